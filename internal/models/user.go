// models описывает доменные модели веб-клиента: пользователя и сессию,
// снапшот лимитов тарифа и view-модели ресурсов (клиенты, документы,
// платежи, расходы). Источник истины по данным — бэкенд; здесь только
// формы для его JSON-контракта (camelCase) и локального UI.
package models

// Role — роль пользователя в системе.
type Role string

const (
	RoleAccountant Role = "ACCOUNTANT"
	RoleClient     Role = "CLIENT"
	// RoleAdmin объявлена бэкендом, но веб-клиент её не использует.
	RoleAdmin Role = "ADMIN"
)

// User — текущий пользователь. Владелец данных — бэкенд; клиент кэширует
// объект на время жизни сессии и ревалидирует через /auth/me.
type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               Role   `json:"role"`
	SubscriptionStatus string `json:"subscriptionStatus,omitempty"`
	OnboardingComplete bool   `json:"onboardingComplete"`
	// Необязательная привязка к профилю бухгалтера или клиента фирмы.
	AccountantID    string `json:"accountantId,omitempty"`
	ClientProfileID string `json:"clientProfileId,omitempty"`
}
