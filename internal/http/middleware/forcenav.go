package middleware

import (
	"net/http"
	"strings"
)

// NavSource — источник отложенной принудительной навигации (ForcedNav).
type NavSource interface {
	Take() (string, bool)
}

// ForceNav воспроизводит отложенную принудительную навигацию, записанную
// клиентом бэкенда (истёкшая сессия, запрет доступа), редиректом на ближайшем
// страничном GET-запросе. API-запросы (/api/...) не трогаем: им об исходе
// сообщает JSON-код ошибки, редиректить XHR бессмысленно.
func ForceNav(nav NavSource) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/api/") {
				if target, ok := nav.Take(); ok && target != r.URL.RequestURI() {
					http.Redirect(w, r, target, http.StatusFound)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
