package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/habitforge/habitd/internal/storage"
)

var ErrNoSession = errors.New("auth: no saved session")

// Session is the locally persisted login state.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

// TokenClaims are the fields read out of a session token without
// verifying its signature. Verification is the server's job; the client
// only needs the identity and expiry for display and staleness checks.
type TokenClaims struct {
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. Tokens without
// an expiry claim never expire locally.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseToken extracts claims from a JWT session token without verifying it.
func ParseToken(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("auth: malformed session token: %w", err)
	}

	out := TokenClaims{}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// SaveSession writes the session snapshot to the store.
func SaveSession(ctx context.Context, store storage.Store, session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if err := store.Set(ctx, storage.KeySession, raw); err != nil {
		return fmt.Errorf("auth: save session: %w", err)
	}
	return nil
}

// LoadSession reads the saved session. A missing or cleared session
// returns ErrNoSession.
func LoadSession(ctx context.Context, store storage.Store) (Session, error) {
	raw, err := store.Get(ctx, storage.KeySession)
	if err != nil {
		if errors.Is(err, storage.ErrNoKey) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("auth: load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, fmt.Errorf("auth: corrupt session snapshot: %w", err)
	}
	if session.Token == "" && session.User.Email == "" {
		return Session{}, ErrNoSession
	}
	return session, nil
}

// ClearSession removes the saved login state.
func ClearSession(ctx context.Context, store storage.Store) error {
	return SaveSession(ctx, store, Session{})
}
