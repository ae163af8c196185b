package models

import "time"

// RefreshToken is a stored refresh token. Only its digest is kept; the
// plaintext goes to the client once.
type RefreshToken struct {
	UserID    string
	TokenHash string
	Expires   time.Time
}
