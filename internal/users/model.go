package users

import "time"

// Account is a login identity created through a third-party provider.
type Account struct {
	ID           string
	Email        string
	FullName     string
	LinkedInID   string
	LinkedInURL  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
