package entities

import "time"

// AuthUser - пользователь из базы аутентификации. Читается только пачками
// по ID, сервис снабжения эти данные не изменяет.
type AuthUser struct {
	ID         string  `json:"id"`
	Name       *string `json:"name"`
	Surname    *string `json:"surname"`
	Patronymic *string `json:"patronymic"`
}

// Session - сессия пользователя. token_hash - sha256 от сырого токена
// из cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}
