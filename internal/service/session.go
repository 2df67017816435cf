package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/schetovod/webclient/internal/models"
	"github.com/schetovod/webclient/internal/storage"
)

// State — состояние разрешения сессии.
//
// Машина состояний: Unresolved → Resolving → {Authenticated, Unauthenticated}.
// Терминальные состояния не меняются до logout/login.
type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "UNRESOLVED"
	case StateResolving:
		return "RESOLVING"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateUnauthenticated:
		return "UNAUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// Session — бутстраппер сессии: ровно один раз за жизнь процесса решает,
// жива ли сохранённая сессия, пробуя тихий refresh прежде чем объявить
// пользователя неаутентифицированным.
//
// Потребители (гарды, маршруты) обязаны трактовать Resolving как «ждём»,
// а не как «не залогинен»: преждевременный редирект во время разрешения —
// класс багов, который эта машина состояний исключает.
type Session struct {
	svc   *Service
	store storage.TokenStore
	log   *slog.Logger

	once sync.Once

	mu    sync.RWMutex
	state State
	user  *models.User
}

// NewSession создаёт неразрешённую сессию.
func NewSession(svc *Service, store storage.TokenStore, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Session{
		svc:   svc,
		store: store,
		log:   log,
		state: StateUnresolved,
	}
}

// Bootstrap разрешает сессию. Повторные вызовы не делают ничего:
// разрешение выполняется ровно один раз за загрузку приложения.
func (s *Session) Bootstrap(ctx context.Context) {
	s.once.Do(func() {
		s.setState(StateResolving)
		s.resolve(ctx)
	})
}

func (s *Session) resolve(ctx context.Context) {
	tokens, err := s.store.Tokens(ctx)
	if err != nil || tokens.Access == "" {
		s.log.Info("session bootstrap: no stored session")
		s.finish(StateUnauthenticated, nil)
		return
	}

	s.svc.api.SetAccessToken(tokens.Access)

	user, err := s.svc.CurrentUser(ctx)
	if err == nil {
		s.log.Info("session bootstrap: authenticated", slog.String("role", string(user.Role)))
		s.finish(StateAuthenticated, &user)
		return
	}

	// Первый заход не удался: пробуем тихий refresh и единственный повтор.
	if tokens.Refresh != "" {
		if _, rerr := s.svc.api.RefreshAccessToken(ctx); rerr == nil {
			if user, err = s.svc.CurrentUser(ctx); err == nil {
				s.log.Info("session bootstrap: authenticated after refresh",
					slog.String("role", string(user.Role)))
				s.finish(StateAuthenticated, &user)
				return
			}
		}
	}

	// Любой провал цепочки — неаутентифицирован; дальше ошибки не идут.
	s.log.Info("session bootstrap: unauthenticated", slog.String("reason", err.Error()))
	s.svc.api.SetAccessToken("")
	s.finish(StateUnauthenticated, nil)
}

// State возвращает текущее состояние разрешения.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User возвращает пользователя сессии (nil, пока не Authenticated).
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	u := *s.user
	return &u
}

// SetUser обновляет кэш пользователя после логина или ревалидации и
// переводит сессию в Authenticated.
func (s *Session) SetUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	s.state = StateAuthenticated
}

// Invalidate переводит сессию в Unauthenticated (logout, истёкшая сессия).
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.state = StateUnauthenticated
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

func (s *Session) finish(st State, u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
	s.user = u
}
