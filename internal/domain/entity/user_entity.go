package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plain text.
// Menu is the ordered weekly plan; it is only populated when loaded explicitly.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Role      Role
	Menu      []Recipe
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the view of a user that is safe to hand to clients.
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Username: u.Username, Email: u.Email, Role: u.Role}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
