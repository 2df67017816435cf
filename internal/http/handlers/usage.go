package handlers

import (
	"net/http"

	apierrors "github.com/schetovod/webclient/internal/errors"
	"github.com/schetovod/webclient/internal/models"
)

// Пороговые уровни индикации использования. Презентационные: резолвер лимитов
// про них не знает, жёсткая блокировка определяется только нулевым лимитом.
const (
	warningThreshold  = 80.0
	criticalThreshold = 90.0
)

// featureUsage — использование одной фичи для UI.
type featureUsage struct {
	Feature models.Feature `json:"feature"`
	Limit   int64          `json:"limit"` // -1 — безлимит
	Used    float64        `json:"used"`
	Percent *float64       `json:"percent,omitempty"` // только при конечном положительном лимите
	Level   string         `json:"level"`             // ok | warning | critical | blocked
	Blocked bool           `json:"blocked"`
}

// usageResponse — ответ GET /api/usage.
type usageResponse struct {
	Loading  bool                        `json:"loading"`
	Snapshot *models.EntitlementSnapshot `json:"snapshot,omitempty"`
	Features []featureUsage              `json:"features,omitempty"`
}

var gatedFeatures = []models.Feature{
	models.FeatureClients,
	models.FeatureDocuments,
	models.FeaturePayments,
	models.FeatureExpenses,
	models.FeatureStorage,
}

// Usage — GET /api/usage: текущий снапшот лимитов с презентационными
// уровнями. Отсутствие снапшота — не ошибка: UI показывает «нет данных».
func (h *Handlers) Usage(w http.ResponseWriter, r *http.Request) {
	snap := h.ent.Snapshot()

	resp := usageResponse{
		Loading:  h.ent.Loading(),
		Snapshot: snap,
	}

	if snap != nil {
		resp.Features = make([]featureUsage, 0, len(gatedFeatures))
		for _, f := range gatedFeatures {
			resp.Features = append(resp.Features, buildFeatureUsage(snap, f))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// RefreshUsage — POST /api/usage/refresh: явный ручной refetch. Контракт
// инвалидации ручной: UI дёргает его после мутаций, меняющих использование.
func (h *Handlers) RefreshUsage(w http.ResponseWriter, r *http.Request) {
	if err := h.ent.Refetch(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.Usage(w, r)
}

func buildFeatureUsage(snap *models.EntitlementSnapshot, f models.Feature) featureUsage {
	limit := snap.Limits.ForFeature(f)

	fu := featureUsage{
		Feature: f,
		Limit:   limit,
		Used:    snap.Usage.ForFeature(f),
		Blocked: limit == 0,
		Level:   "ok",
	}

	if fu.Blocked {
		fu.Level = "blocked"
		return fu
	}

	if percent, ok := snap.UsagePercent(f); ok {
		fu.Percent = &percent

		switch {
		case percent >= criticalThreshold:
			fu.Level = "critical"
		case percent >= warningThreshold:
			fu.Level = "warning"
		}
	}

	return fu
}
