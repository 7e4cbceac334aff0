package dto

import "github.com/Rasika1975/socialapp/internal/model"

type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func AuthResponseFromUser(user model.User, token string) *AuthResponse {
	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}
}
