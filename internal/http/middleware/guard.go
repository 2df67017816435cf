package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/schetovod/webclient/internal/models"
	"github.com/schetovod/webclient/internal/service"
)

// SessionInfo — потребительский контракт сессии для гардов.
type SessionInfo interface {
	State() service.State
	User() *models.User
}

const loginRoute = "/login"

// GuardOptions — настройки ролевого гарда.
type GuardOptions struct {
	// RedirectTo переопределяет маршрут редиректа при несоответствии роли.
	// Пустое значение — редирект на домашнюю страницу роли пользователя.
	RedirectTo string
}

// RequireRole пускает запрос дальше, только если сессия разрешена и роль
// пользователя входит в allowed.
//
// Пока сессия разрешается — 503 с маркером "resolving" и БЕЗ навигации:
// преждевременный редирект до завершения бутстрапа недопустим. Отсутствие
// пользователя после разрешения — редирект на login; несоответствие роли —
// редирект на домашнюю страницу роли (или RedirectTo, если задан).
func RequireRole(sess SessionInfo, opts GuardOptions, allowed ...models.Role) Middleware {
	allowedSet := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch sess.State() {
			case service.StateUnresolved, service.StateResolving:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "resolving"})
				return

			case service.StateUnauthenticated:
				redirect(w, r, loginRoute)
				return
			}

			user := sess.User()
			if user == nil {
				redirect(w, r, loginRoute)
				return
			}

			if _, ok := allowedSet[user.Role]; !ok {
				target := opts.RedirectTo
				if target == "" {
					target = HomeFor(user.Role)
				}

				redirect(w, r, target)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HomeFor — домашняя страница роли: клиенты фирмы живут в портале,
// все остальные — в рабочем кабинете.
func HomeFor(role models.Role) string {
	if role == models.RoleClient {
		return "/portal"
	}

	return "/dashboard"
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}
