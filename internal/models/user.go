package models

// User represents a registered account. PasswordHash holds a bcrypt hash and
// never leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
