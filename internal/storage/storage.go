// storage описывает контракт персистентного хранилища токенов сессии.
//
// Хранилище — источник истины между перезапусками приложения; in-memory
// копия access-токена в HTTP-клиенте — кэш поверх него, заполняемый при
// бутстрапе. Процесс — единственный писатель своего хранилища
// (координация между несколькими рабочими местами вне скоупа).
package storage

import (
	"context"
	"errors"

	"github.com/schetovod/webclient/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/storage_mocks.go -package=mocks

var (
	// ErrNotFound — сохранённой сессии нет.
	ErrNotFound = errors.New("session tokens not found")
)

// TokenStore — персистентное хранилище пары токенов текущей сессии.
type TokenStore interface {
	// Tokens возвращает сохранённую пару или ErrNotFound.
	Tokens(ctx context.Context) (models.StoredTokens, error)
	// Save сохраняет пару целиком (логин/полная ротация).
	Save(ctx context.Context, access, refresh string) error
	// SetAccess заменяет только access-токен (успешный refresh).
	// Возвращает ErrNotFound, если сессии нет.
	SetAccess(ctx context.Context, access string) error
	// Clear удаляет сессию; отсутствие сессии не является ошибкой.
	Clear(ctx context.Context) error
}
