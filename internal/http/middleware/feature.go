package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/schetovod/webclient/internal/models"
)

// FeatureGate — потребительский контракт резолвера лимитов для гейтинга.
type FeatureGate interface {
	IsFeatureBlocked(f models.Feature) bool
}

// RequireFeature блокирует маршрут, если лимит фичи в тарифе равен нулю.
// Отсутствие снапшота лимитов НЕ блокирует (у гейта нет информации) —
// финальный арбитр в любом случае бэкенд.
func RequireFeature(gate FeatureGate, f models.Feature) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate.IsFeatureBlocked(f) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{
						"code":    "feature_blocked",
						"message": "feature is not available on the current plan",
						"feature": string(f),
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
