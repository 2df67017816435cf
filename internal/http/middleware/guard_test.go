package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schetovod/webclient/internal/models"
	"github.com/schetovod/webclient/internal/service"
)

type fakeSession struct {
	state service.State
	user  *models.User
}

func (s *fakeSession) State() service.State { return s.state }
func (s *fakeSession) User() *models.User   { return s.user }

type fakeGate struct{ blocked map[models.Feature]bool }

func (g *fakeGate) IsFeatureBlocked(f models.Feature) bool { return g.blocked[f] }

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

// Пока сессия разрешается, гард отвечает нейтральным "resolving" и не
// выполняет ни одной навигации.
func TestRequireRole_WhileResolving_NoNavigation(t *testing.T) {
	t.Parallel()

	for _, state := range []service.State{service.StateUnresolved, service.StateResolving} {
		var called bool
		h := Chain(okHandler(t, &called),
			RequireRole(&fakeSession{state: state}, GuardOptions{}, models.RoleAccountant))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code, state.String())
		require.Contains(t, rec.Body.String(), "resolving")
		require.Empty(t, rec.Header().Get("Location"), state.String())
		require.False(t, called, state.String())
	}
}

func TestRequireRole_Unauthenticated_RedirectsToLogin(t *testing.T) {
	t.Parallel()

	var called bool
	h := Chain(okHandler(t, &called),
		RequireRole(&fakeSession{state: service.StateUnauthenticated}, GuardOptions{}, models.RoleAccountant))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.False(t, called)
}

// Несоответствие роли — редирект на домашнюю страницу РОЛИ пользователя,
// а не на общий forbidden.
func TestRequireRole_WrongRole_RedirectsToRoleHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role models.Role
		want string
	}{
		{name: "client goes to portal", role: models.RoleClient, want: "/portal"},
		{name: "accountant goes to dashboard", role: models.RoleAccountant, want: "/dashboard"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var called bool
			sess := &fakeSession{
				state: service.StateAuthenticated,
				user:  &models.User{ID: "u1", Role: tc.role},
			}
			// Гард требует роль, которой у пользователя нет.
			other := models.RoleAccountant
			if tc.role == models.RoleAccountant {
				other = models.RoleClient
			}

			h := Chain(okHandler(t, &called), RequireRole(sess, GuardOptions{}, other))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

			require.Equal(t, http.StatusFound, rec.Code)
			require.Equal(t, tc.want, rec.Header().Get("Location"))
			require.False(t, called)
		})
	}
}

// Явный RedirectTo имеет приоритет над домашней страницей роли.
func TestRequireRole_RedirectToOverride(t *testing.T) {
	t.Parallel()

	var called bool
	sess := &fakeSession{
		state: service.StateAuthenticated,
		user:  &models.User{ID: "u1", Role: models.RoleClient},
	}

	h := Chain(okHandler(t, &called),
		RequireRole(sess, GuardOptions{RedirectTo: "/upgrade"}, models.RoleAccountant))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/billing", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/upgrade", rec.Header().Get("Location"))
	require.False(t, called)
}

func TestRequireRole_AllowedRole_PassesThrough(t *testing.T) {
	t.Parallel()

	var called bool
	sess := &fakeSession{
		state: service.StateAuthenticated,
		user:  &models.User{ID: "u1", Role: models.RoleAccountant},
	}

	h := Chain(okHandler(t, &called),
		RequireRole(sess, GuardOptions{}, models.RoleAccountant, models.RoleClient))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}

func TestRequireFeature_BlockedAndAllowed(t *testing.T) {
	t.Parallel()

	gate := &fakeGate{blocked: map[models.Feature]bool{models.FeatureDocuments: true}}

	var called bool
	blocked := Chain(okHandler(t, &called), RequireFeature(gate, models.FeatureDocuments))

	rec := httptest.NewRecorder()
	blocked.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/documents", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "feature_blocked")
	require.False(t, called)

	allowed := Chain(okHandler(t, &called), RequireFeature(gate, models.FeatureClients))

	rec = httptest.NewRecorder()
	allowed.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/clients", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}

type fakeNavSource struct {
	target string
	set    bool
}

func (n *fakeNavSource) Take() (string, bool) {
	if !n.set {
		return "", false
	}
	n.set = false
	return n.target, true
}

func TestForceNav_RedirectsPageRequest(t *testing.T) {
	t.Parallel()

	nav := &fakeNavSource{target: "/login?session=expired", set: true}

	var called bool
	h := Chain(okHandler(t, &called), ForceNav(nav))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?session=expired", rec.Header().Get("Location"))
	require.False(t, called)

	// Цель одноразовая: повторный запрос проходит насквозь.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}

func TestForceNav_SkipsAPIRequests(t *testing.T) {
	t.Parallel()

	nav := &fakeNavSource{target: "/forbidden", set: true}

	var called bool
	h := Chain(okHandler(t, &called), ForceNav(nav))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	// Цель остаётся ждать ближайший страничный запрос.
	require.True(t, nav.set)
}
