package test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCtx matches any context argument in a mock expectation. Handlers pass
// the request context down, which tests cannot construct ahead of time.
func MockCtx() any {
	return mock.MatchedBy(func(ctx context.Context) bool { return true })
}
