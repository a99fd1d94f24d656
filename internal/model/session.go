package model

import (
	"fmt"
	"time"
)

// Session identifies the logged-in user. The bearer token itself is kept in
// the OS keyring, never inside the model.
type Session struct {
	Username  string
	ServerURL string
	CreatedAt time.Time
}

// Validate validates the session.
func (s Session) Validate() error {
	if s.Username == "" {
		return fmt.Errorf("username is required: %w", ErrNotValid)
	}
	if s.ServerURL == "" {
		return fmt.Errorf("server url is required: %w", ErrNotValid)
	}
	return nil
}
