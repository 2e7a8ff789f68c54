// Package identity parses the bearer tokens issued by the auth frontend and
// carries the authenticated user through the request context.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller. The UserUUID is the auth provider's
// subject id.
type Identity struct {
	UserUUID string
	Email    string
	FullName string
}

// Claims is the token payload. The registered subject claim carries the
// user uuid.
type Claims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// Parse verifies an HS256 token against secret and returns the identity it
// carries. Expired or otherwise invalid tokens are rejected.
func Parse(tokenString string, secret string) (Identity, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, fmt.Errorf("invalid token")
	}

	return Identity{
		UserUUID: claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
	}, nil
}

// NewToken signs an HS256 token for a user, used by the admin CLI and tests.
func NewToken(id Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    id.Email,
		FullName: id.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserUUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type contextKey int

const identityKey contextKey = iota

// WithIdentity stores the authenticated caller on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get returns the authenticated caller, or a zero Identity when the request
// is anonymous.
func Get(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}
