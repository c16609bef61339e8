package models

// User represents an account that owns imported leads.
// Column names follow the remote Users table.
type User struct {
	ID        string    `json:"uuid"`
	UserName  string    `json:"userName"`
	Password  string    `json:"password,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Public returns a copy of the user without the stored password
func (u *User) Public() *User {
	out := *u
	out.Password = ""
	return &out
}

// RegisterRequest is the body of POST /user
type RegisterRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}
