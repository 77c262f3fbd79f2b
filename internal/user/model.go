package user

import "time"

type User struct {
	ID           uint
	Email        string
	FullName     string
	Phone        string
	PasswordHash string
	Role         string
	Active       bool
	CreatedAt    time.Time
}

type RegisterInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
