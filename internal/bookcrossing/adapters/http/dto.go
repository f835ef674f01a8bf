package http

import "time"

// RegisterRequest - тело запроса регистрации.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse - ответ на успешную регистрацию.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginResponse - ответ на успешный вход. Токен передается только в cookie.
type LoginResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse - данные текущего пользователя.
type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusResponse - простой ответ со статусом.
type StatusResponse struct {
	Status string `json:"status"`
}
