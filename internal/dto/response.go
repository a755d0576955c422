package dto

import "github.com/Gakenye8741/ticket-gateway/internal/models"

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ReconcileResponse struct {
	Confirmed []int `json:"confirmed"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
