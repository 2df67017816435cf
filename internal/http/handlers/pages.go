package handlers

import (
	"html/template"
	"net/http"
)

// Страничные обработчики — минимальные HTML-оболочки локального UI.
// Вся логика живёт в /api; страницы лишь дают точки входа для навигации
// (в том числе принудительной: /login?session=expired и /forbidden).

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
<div id="app" data-page="{{.Page}}"></div>
</body>
</html>
`))

type pageData struct {
	Title  string
	Notice string
	Page   string
}

func renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTmpl.Execute(w, data)
}

// LoginPage — GET /login. Маркер session=expired показывает выделенное
// сообщение об истёкшей сессии.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Вход", Page: "login"}
	if r.URL.Query().Get("session") == "expired" {
		data.Notice = "Сессия истекла, войдите заново."
	}

	renderPage(w, data)
}

// ForbiddenPage — GET /forbidden.
func (h *Handlers) ForbiddenPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, pageData{
		Title:  "Доступ запрещён",
		Notice: "У вас нет прав для просмотра этой страницы.",
		Page:   "forbidden",
	})
}

// DashboardPage — GET /dashboard: кабинет бухгалтера.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, pageData{Title: "Кабинет", Page: "dashboard"})
}

// PortalPage — GET /portal: портал клиента фирмы.
func (h *Handlers) PortalPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, pageData{Title: "Портал клиента", Page: "portal"})
}
