// service — доменные операции веб-клиента поверх HTTP-клиента бэкенда:
// аутентификация и жизненный цикл сессии, типизированный CRUD ресурсов,
// резолвер лимитов тарифа.
package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/schetovod/webclient/internal/storage"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service_mocks.go -package=mocks

// API — потребительский контракт HTTP-клиента бэкенда.
type API interface {
	Get(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, body, out any) error
	Put(ctx context.Context, endpoint string, body, out any) error
	Patch(ctx context.Context, endpoint string, body, out any) error
	Delete(ctx context.Context, endpoint string, out any) error
	Upload(ctx context.Context, endpoint, contentType string, payload []byte, out any) error
	SetAccessToken(token string)
	AccessToken() string
	RefreshAccessToken(ctx context.Context) (string, error)
}

// Service — слой доменных операций. Владеет побочными эффектами персистенции
// при login/logout; всё остальное состояние живёт в бэкенде.
type Service struct {
	api   API
	store storage.TokenStore
	log   *slog.Logger
}

// NewService создаёт сервис поверх API-клиента и хранилища токенов.
func NewService(api API, store storage.TokenStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Service{
		api:   api,
		store: store,
		log:   log,
	}
}
