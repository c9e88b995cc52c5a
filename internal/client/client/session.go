package client

import "time"

// Session is the state of one logged-in user. It is created by
// NewSession after Login and discarded on logout.
type Session struct {
	Token     string
	UserID    string
	Username  string
	ExpiresAt time.Time

	// LastSearch holds the books of the most recent search so commands can
	// refer to them by position.
	LastSearch []*Book
}

func NewSession(res *LoginResult) *Session {
	return &Session{
		Token:     res.Token,
		UserID:    res.User.ID,
		Username:  res.User.Username,
		ExpiresAt: res.ExpiresAt,
	}
}

// Active reports whether s holds a token that has not expired at t. A zero
// ExpiresAt never expires client-side; the server still decides.
func (s *Session) Active(t time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || t.Before(s.ExpiresAt)
}
