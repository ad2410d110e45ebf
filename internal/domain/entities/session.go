package entities

import "time"

// SessionTTL é a validade de uma sessão recém-criada
const SessionTTL = 30 * 24 * time.Hour

// Session é uma sessão server-side paralela ao JWT
type Session struct {
	ID           string
	UserID       string
	Token        string
	IPAddress    string
	UserAgent    string
	LastActivity time.Time
	ExpiresAt    time.Time
	IsActive     bool
	CreatedAt    time.Time
}

// IsValid informa se a sessão está ativa e não expirou em now
func (s *Session) IsValid(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}
