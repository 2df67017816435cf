// http — локальный HTTP-слой UI: роутер, страницы и JSON-API поверх
// сервисного слоя. Всё состояние сессии живёт ниже; здесь только маршруты,
// гарды и воспроизведение принудительной навигации.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schetovod/webclient/internal/http/handlers"
	"github.com/schetovod/webclient/internal/http/middleware"
	"github.com/schetovod/webclient/internal/models"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, sess middleware.SessionInfo, gate middleware.FeatureGate, nav *ForcedNav, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.ForceNav(nav),        // воспроизводим отложенную принудительную навигацию
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	registerPages(root, h, sess)
	registerAPI(root, h, sess, gate)

	return root
}

// registerPages — страничные маршруты. Кабинет и портал закрыты ролевыми
// гардами; login и forbidden публичны (на них ведёт принудительная навигация).
func registerPages(r chi.Router, h *handlers.Handlers, sess middleware.SessionInfo) {
	r.Get("/login", h.LoginPage)
	r.Get("/forbidden", h.ForbiddenPage)

	r.With(middleware.RequireRole(sess, middleware.GuardOptions{}, models.RoleAccountant)).
		Get("/dashboard", h.DashboardPage)
	r.With(middleware.RequireRole(sess, middleware.GuardOptions{}, models.RoleClient)).
		Get("/portal", h.PortalPage)

	// Корень — на домашнюю страницу роли (гард сам разрулит редиректы).
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		user := sess.User()
		if user == nil {
			http.Redirect(w, req, "/login", http.StatusFound)
			return
		}

		http.Redirect(w, req, middleware.HomeFor(user.Role), http.StatusFound)
	})
}

// registerAPI — единая точка регистрации JSON-API локального UI.
func registerAPI(r chi.Router, h *handlers.Handlers, sess middleware.SessionInfo, gate middleware.FeatureGate) {
	r.Route("/api", func(api chi.Router) {
		// auth: доступны без разрешённой сессии.
		api.Post("/login", h.Login)
		api.Post("/logout", h.Logout)
		api.Get("/session", h.Session)
		api.Post("/password-reset/request", h.RequestPasswordReset)
		api.Post("/password-reset/confirm", h.ResetPassword)

		// Общие маршруты обеих ролей.
		api.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireRole(sess, middleware.GuardOptions{},
				models.RoleAccountant, models.RoleClient))

			pr.Post("/onboarding/complete", h.CompleteOnboarding)

			pr.Get("/usage", h.Usage)
			pr.Post("/usage/refresh", h.RefreshUsage)

			pr.Get("/documents", h.ListDocuments)
			pr.With(middleware.RequireFeature(gate, models.FeatureDocuments)).
				Post("/documents", h.UploadDocument)
			pr.Delete("/documents/{id}", h.DeleteDocument)
		})

		// Маршруты бухгалтера.
		api.Group(func(acc chi.Router) {
			acc.Use(middleware.RequireRole(sess, middleware.GuardOptions{}, models.RoleAccountant))

			acc.Get("/clients", h.ListClients)
			acc.With(middleware.RequireFeature(gate, models.FeatureClients)).
				Post("/clients", h.CreateClient)
			acc.Patch("/clients/{id}", h.UpdateClient)
			acc.Delete("/clients/{id}", h.DeleteClient)

			acc.Get("/payments", h.ListPayments)
			acc.With(middleware.RequireFeature(gate, models.FeaturePayments)).
				Post("/payments", h.CreatePayment)

			acc.Get("/expenses", h.ListExpenses)
			acc.With(middleware.RequireFeature(gate, models.FeatureExpenses)).
				Post("/expenses", h.CreateExpense)
			acc.Patch("/expenses/{id}", h.UpdateExpense)
			acc.Delete("/expenses/{id}", h.DeleteExpense)
		})
	})
}
