package dto

import "time"

type RegisterRequestDTO struct {
	Login     string `json:"login" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	Password  string `json:"password" example:"secret1"`
	BirthDate string `json:"birthDate" example:"1990-04-21"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

type UserDTO struct {
	ID        int       `json:"id" example:"1"`
	Login     string    `json:"login" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"isAdmin" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2024-05-01T12:00:00Z"`
}

type AuthResponseDTO struct {
	Message string  `json:"message" example:"User successfully authenticated"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}
