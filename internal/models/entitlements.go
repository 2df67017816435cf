package models

// Feature — ресурс тарифа, ограниченный лимитом.
type Feature string

const (
	FeatureClients   Feature = "clients"
	FeatureDocuments Feature = "documents"
	FeaturePayments  Feature = "payments"
	FeatureExpenses  Feature = "expenses"
	FeatureStorage   Feature = "storage"
)

// Семантика лимитов: 0 — ресурс полностью заблокирован,
// -1 или отсутствие значения — безлимит.
const LimitUnlimited int64 = -1

// Limits — лимиты тарифа. Указатели отличают отсутствующее значение
// (безлимит) от явного нуля (блокировка).
type Limits struct {
	MaxClients   *int64 `json:"maxClients,omitempty"`
	MaxDocuments *int64 `json:"maxDocuments,omitempty"`
	MaxPayments  *int64 `json:"maxPayments,omitempty"`
	MaxExpenses  *int64 `json:"maxExpenses,omitempty"`
	StorageGB    *int64 `json:"storageGB,omitempty"`
}

// Usage — фактическое использование ресурсов.
type Usage struct {
	Clients   int64   `json:"clients"`
	Documents int64   `json:"documents"`
	Payments  int64   `json:"payments"`
	Expenses  int64   `json:"expenses"`
	StorageGB float64 `json:"storageGB"`
}

// EntitlementSnapshot — снапшот лимитов/использования тарифа.
// Обновляется целиком (без частичного мерджа) резолвером.
type EntitlementSnapshot struct {
	Limits Limits `json:"limits"`
	Usage  Usage  `json:"usage"`
}

// ForFeature возвращает лимит фичи. Отсутствующее значение
// нормализуется в LimitUnlimited.
func (l Limits) ForFeature(f Feature) int64 {
	var p *int64
	switch f {
	case FeatureClients:
		p = l.MaxClients
	case FeatureDocuments:
		p = l.MaxDocuments
	case FeaturePayments:
		p = l.MaxPayments
	case FeatureExpenses:
		p = l.MaxExpenses
	case FeatureStorage:
		p = l.StorageGB
	}

	if p == nil {
		return LimitUnlimited
	}

	return *p
}

// ForFeature возвращает использование фичи.
func (u Usage) ForFeature(f Feature) float64 {
	switch f {
	case FeatureClients:
		return float64(u.Clients)
	case FeatureDocuments:
		return float64(u.Documents)
	case FeaturePayments:
		return float64(u.Payments)
	case FeatureExpenses:
		return float64(u.Expenses)
	case FeatureStorage:
		return u.StorageGB
	}

	return 0
}

// UsagePercent — процент использования фичи.
// Определён ТОЛЬКО при конечном положительном лимите; для нуля и безлимита
// возвращает ok=false (безлимитные ресурсы не считаются "почти исчерпанными").
func (s *EntitlementSnapshot) UsagePercent(f Feature) (float64, bool) {
	if s == nil {
		return 0, false
	}

	limit := s.Limits.ForFeature(f)
	if limit <= 0 {
		return 0, false
	}

	return s.Usage.ForFeature(f) / float64(limit) * 100, true
}
