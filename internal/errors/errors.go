// errors стандартизирует ответы об ошибках локального HTTP-слоя UI.
// На вход он принимает ошибку нижних слоёв (клиент бэкенда, сервис,
// хранилище), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Доменные ошибки бэкенда (*client.APIError) доносятся как есть: их
// сообщения предназначены для показа пользователю inline.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/schetovod/webclient/internal/client"
	"github.com/schetovod/webclient/internal/storage"
)

// ErrInvalidArgument — локальная ошибка разбора входных данных хендлера.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError — единый формат ошибки для UI.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку нижних слоёв в HTTP-статус и унифицированный
// ответ для UI.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal, чтобы не послать
//     "200 OK" с телом ошибки и не маскировать баг;
//   - сентинели клиента (session expired / access denied / нет сессии) —
//     стабильные коды 401/403;
//   - *client.APIError — статус и сообщение бэкенда без изменений;
//   - дедлайн — 504; прочее — 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, newResponse("internal", "internal error")

	case errors.Is(err, client.ErrSessionExpired):
		return http.StatusUnauthorized, newResponse("session_expired", "session expired")

	case errors.Is(err, client.ErrNoRefreshToken), errors.Is(err, storage.ErrNotFound):
		return http.StatusUnauthorized, newResponse("not_authenticated", "not authenticated")

	case errors.Is(err, client.ErrAccessDenied):
		return http.StatusForbidden, newResponse("access_denied", "access denied")

	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, newResponse("invalid_argument", "invalid argument")

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, newResponse("deadline_exceeded", "deadline exceeded")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, newResponse("backend_error", apiErr.Message)
	}

	return http.StatusInternalServerError, newResponse("internal", "internal error")
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func newResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: message}}
}
