package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Сентинельные ошибки клиента. Доменные ошибки бэкенда приходят как *APIError
// и доносятся до вызывающего без изменений.
var (
	// ErrSessionExpired — refresh не удался, локальная сессия завершена.
	ErrSessionExpired = errors.New("session expired")
	// ErrAccessDenied — 403: аутентифицирован, но не авторизован. Refresh не поможет.
	ErrAccessDenied = errors.New("access denied")
	// ErrNoRefreshToken — refresh-токена нет в хранилище; сетевой вызов не выполнялся.
	ErrNoRefreshToken = errors.New("no refresh token available")
)

// APIError — не-2xx ответ бэкенда с доменным сообщением.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// parseAPIError разбирает тело ошибки формата {"message": "..."}.
// Если тело не JSON или message пуст — подставляется общее сообщение,
// ошибка парсинга наружу не уходит.
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return &APIError{
			Status:  status,
			Message: fmt.Sprintf("request failed with status %d", status),
		}
	}

	return &APIError{Status: status, Message: payload.Message}
}
