package handler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/identity"
)

// MockSecret signs tokens in tests, installed into the config by BearerToken.
const MockSecret = "test-signing-secret-0123456789abcdef"

var MockUserUUID = uuid.NewString()
var MockIdentity = identity.Identity{
	UserUUID: MockUserUUID,
	Email:    "user@example.com",
	FullName: "Test User",
}

func BearerToken(t *testing.T) string {
	return BearerCustomToken(t, MockIdentity)
}

func BearerCustomToken(t *testing.T, id identity.Identity) string {
	config.Get().Auth.Secret = MockSecret
	token, err := identity.NewToken(id, MockSecret, time.Hour)
	if err != nil {
		t.Error("Could not sign token")
	}
	return "Bearer " + token
}
