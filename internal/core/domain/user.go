package domain

import "time"

// User is a registered account as stored by the user directory
type User struct {
	ID           string    `json:"id"` // Empty until the directory persists it
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPublic is the hash-stripped projection handed out after validation
type UserPublic struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPublic converts a User to UserPublic
func (u *User) ToPublic() *UserPublic {
	return &UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserSummary is what one user may see of another
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Summary drops contact details and timestamps
func (u *UserPublic) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username}
}
