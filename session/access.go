package session

import (
	"fmt"
	"time"

	"promptsmith/models"
)

// AdminUnlockCode grants admin access. Like the daily client code it lives
// in client-visible logic: a soft gate that tells casual visitors apart
// from known users, not a credential.
const AdminUnlockCode = "admin-unlock-righteye"

// clientCodeFor derives the client access code valid on the given date:
// the shared secret joined with the zero-padded day, month, and full year.
func clientCodeFor(secret string, date time.Time) string {
	return fmt.Sprintf("%s-%02d-%02d-%04d", secret, date.Day(), int(date.Month()), date.Year())
}

// Login checks code against the fixed admin unlock and today's client code,
// persists the resulting level, and returns it. Any other input leaves the
// level untouched and returns ErrInvalidAccessCode.
func (s *Session) Login(code string) (models.AccessLevel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch code {
	case AdminUnlockCode:
		s.access = models.AccessAdmin
	case clientCodeFor(s.settings.AccessSecret, s.now()):
		s.access = models.AccessClient
	default:
		return s.access, ErrInvalidAccessCode
	}

	s.store.SaveAccessLevel(s.access)
	return s.access, nil
}

// Logout drops back to no access.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = models.AccessNone
	s.store.SaveAccessLevel(s.access)
}

// AccessLevel returns the effective level: when the gate is disabled,
// visitors without a code are treated as clients.
func (s *Session) AccessLevel() models.AccessLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveAccessLocked()
}

func (s *Session) effectiveAccessLocked() models.AccessLevel {
	if !s.settings.GateEnabled && s.access == models.AccessNone {
		return models.AccessClient
	}
	return s.access
}
