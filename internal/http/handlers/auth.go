package handlers

import (
	"fmt"
	"net/http"

	apierrors "github.com/schetovod/webclient/internal/errors"
	"github.com/schetovod/webclient/internal/models"
	logctx "github.com/schetovod/webclient/pkg/log"
)

// sessionResponse — состояние сессии для UI.
type sessionResponse struct {
	State string       `json:"state"`
	User  *models.User `json:"user,omitempty"`
}

// Login — POST /api/login. Проксирует аутентификацию на бэкенд; при успехе
// сессия переходит в Authenticated, снапшот лимитов перечитывается
// best-effort (его отсутствие не блокирует вход).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeStrict(r, &creds); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if creds.Email == "" || creds.Password == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: email and password are required", apierrors.ErrInvalidArgument))
		return
	}

	result, err := h.svc.Login(r.Context(), creds)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if result.User != nil {
		h.session.SetUser(*result.User)
	}

	if err := h.ent.Refetch(r.Context()); err != nil {
		logctx.From(r.Context()).Warn("entitlements not loaded after login")
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		State: h.session.State().String(),
		User:  result.User,
	})
}

// Logout — POST /api/logout. Серверная инвалидация + безусловная локальная
// очистка; сессия всегда переходит в Unauthenticated.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.session.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// Session — GET /api/session: текущее состояние разрешения и пользователь.
// UI опрашивает его при старте, пока бутстрап не завершится.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{
		State: h.session.State().String(),
		User:  h.session.User(),
	})
}

// RequestPasswordReset — POST /api/password-reset/request.
// Ответ одинаков вне зависимости от существования email.
func (h *Handlers) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.Email == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: email is required", apierrors.ErrInvalidArgument))
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if the email exists, a reset link has been sent",
	})
}

// ResetPassword — POST /api/password-reset/confirm.
func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		apierrors.WriteError(w, r,
			fmt.Errorf("%w: token and newPassword are required", apierrors.ErrInvalidArgument))
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// CompleteOnboarding — POST /api/onboarding/complete. После флипа маркера
// пользователь перечитывается с бэкенда: кэш сессии обновляется только
// авторитетными данными.
func (h *Handlers) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CompleteOnboarding(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	user, err := h.svc.CurrentUser(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.session.SetUser(user)
	writeJSON(w, http.StatusOK, user)
}
