package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the part of a User that handlers may see and return.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    Identity `json:"data"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	User Identity `json:"user"`
}
