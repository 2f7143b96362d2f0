// Package session holds the current bearer credential and the cached
// user info, behind a pluggable storage backend.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

// Storage keys. Both entries are written and cleared together.
const (
	tokenKey = "token"
	userKey  = "user_info"
)

// Session exposes the stored credential to outgoing requests and clears
// it when the server rejects it.
type Session struct {
	storage Storage
}

// New creates a session over the given storage backend.
func New(storage Storage) *Session {
	return &Session{storage: storage}
}

// Token returns the stored bearer token. Implements apiclient.TokenSource.
func (s *Session) Token() (string, bool) {
	token, err := s.storage.Get(tokenKey)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// AuthHeaders returns the headers to attach to an authenticated request.
// Empty when no credential is stored.
func (s *Session) AuthHeaders() map[string]string {
	token, ok := s.Token()
	if !ok {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// SaveLogin stores the token and the user info it belongs to.
func (s *Session) SaveLogin(token string, user *apiclient.Usuario) error {
	if err := s.storage.Set(tokenKey, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshaling user info: %w", err)
		}
		if err := s.storage.Set(userKey, string(data)); err != nil {
			return fmt.Errorf("storing user info: %w", err)
		}
	}
	return nil
}

// CurrentUser returns the user info cached at login time.
func (s *Session) CurrentUser() (*apiclient.Usuario, bool) {
	raw, err := s.storage.Get(userKey)
	if err != nil || raw == "" {
		return nil, false
	}
	var user apiclient.Usuario
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Clear removes the credential and the cached user info together.
func (s *Session) Clear() error {
	if err := s.storage.Delete(tokenKey); err != nil {
		return err
	}
	return s.storage.Delete(userKey)
}

// Expired reports whether the stored token is a JWT whose exp claim has
// passed. Opaque or claim-less tokens are never considered expired here;
// the server stays the authority.
func (s *Session) Expired(now time.Time) bool {
	token, ok := s.Token()
	if !ok {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
