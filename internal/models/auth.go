package models

// Credentials — тело POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult — ответ бэкенда на успешный логин: пара токенов + пользователь.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// StoredTokens — пара токенов в персистентном хранилище.
// Access-токен короткоживущий (in-memory копия живёт в HTTP-клиенте),
// refresh-токен долгоживущий и существует только здесь.
type StoredTokens struct {
	Access  string
	Refresh string
}
