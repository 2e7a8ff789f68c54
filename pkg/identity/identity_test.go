package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestParseRoundTrip(t *testing.T) {
	id := Identity{UserUUID: uuid.NewString(), Email: "person@example.com", FullName: "Test Person"}

	token, err := NewToken(id, testSecret, time.Hour)
	assert.NoError(t, err)

	parsed, err := Parse(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseWrongSecret(t *testing.T) {
	id := Identity{UserUUID: uuid.NewString(), Email: "person@example.com"}
	token, err := NewToken(id, testSecret, time.Hour)
	assert.NoError(t, err)

	_, err = Parse(token, "another-secret-another-secret-12")
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	id := Identity{UserUUID: uuid.NewString(), Email: "person@example.com"}
	token, err := NewToken(id, testSecret, -time.Minute)
	assert.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestParseMissingSubject(t *testing.T) {
	token, err := NewToken(Identity{Email: "person@example.com"}, testSecret, time.Hour)
	assert.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	id := Identity{UserUUID: uuid.NewString(), Email: "person@example.com"}
	ctx := WithIdentity(context.Background(), id)
	assert.Equal(t, id, Get(ctx))

	assert.Equal(t, Identity{}, Get(context.Background()))
}
