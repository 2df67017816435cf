package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schetovod/webclient/internal/models"
)

// Entitlements — процессный кэш лимитов/использования тарифа с булевыми
// запросами для гейтинга фич.
//
// Снапшот заменяется целиком при Refetch; автоматической инвалидации нет —
// после мутаций, меняющих использование (создание клиента, загрузка
// документа), вызывающий обязан явно дёрнуть Refetch.
//
// Политика при отсутствии данных: nil-снапшот и Loading()==false означают
// «информации нет, НЕ блокировать» — доступность важнее ложной блокировки.
type Entitlements struct {
	api API
	log *slog.Logger

	mu       sync.RWMutex
	snapshot *models.EntitlementSnapshot
	loading  bool
}

// NewEntitlements создаёт пустой резолвер (снапшота нет до первого Refetch).
func NewEntitlements(api API, log *slog.Logger) *Entitlements {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Entitlements{api: api, log: log}
}

// Refetch перечитывает снапшот с бэкенда и заменяет кэш целиком.
// При ошибке сети предыдущий снапшот остаётся на месте; ошибка возвращается
// вызывающему для показа, но блокирующие запросы от неё не зависят.
func (e *Entitlements) Refetch(ctx context.Context) error {
	const op = "service.Entitlements.Refetch"

	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.loading = false
		e.mu.Unlock()
	}()

	var snap models.EntitlementSnapshot
	if err := e.api.Get(ctx, "/subscriptions/me/usage", &snap); err != nil {
		e.log.Warn("entitlements refetch failed", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	e.mu.Lock()
	e.snapshot = &snap
	e.mu.Unlock()

	return nil
}

// Snapshot возвращает копию текущего снапшота (nil — данных ещё нет).
func (e *Entitlements) Snapshot() *models.EntitlementSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.snapshot == nil {
		return nil
	}

	snap := *e.snapshot
	return &snap
}

// Loading сообщает, идёт ли загрузка снапшота прямо сейчас.
func (e *Entitlements) Loading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loading
}

// IsFeatureBlocked — true тогда и только тогда, когда лимит фичи равен
// ровно 0. Безлимит (-1 или отсутствие лимита) и любой положительный лимит
// не блокируют; отсутствие снапшота тоже не блокирует.
func (e *Entitlements) IsFeatureBlocked(f models.Feature) bool {
	snap := e.Snapshot()
	if snap == nil {
		return false
	}

	return snap.Limits.ForFeature(f) == 0
}

// HasFeatureAccess — логическое отрицание IsFeatureBlocked.
func (e *Entitlements) HasFeatureAccess(f models.Feature) bool {
	return !e.IsFeatureBlocked(f)
}
