package domain

import "time"

// User is an identity record. PasswordHash is a bcrypt hash and is never
// serialized back to clients.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns the subset of the user that is safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{Username: u.Username, Email: u.Email}
}

type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
