package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schetovod/webclient/internal/models"
	"github.com/schetovod/webclient/internal/pkg/redact"
)

// Login аутентифицирует пользователя. При успехе сохраняет пару токенов в
// хранилище и выставляет access-токен клиенту. Доменные ошибки бэкенда
// (неверные креды) доносятся без изменений — UI показывает их inline.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	const op = "service.Login"

	var result models.LoginResult
	if err := s.api.Post(ctx, "/auth/login", creds, &result); err != nil {
		return models.LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Save(ctx, result.AccessToken, result.RefreshToken); err != nil {
		return models.LoginResult{}, fmt.Errorf("%s: persist tokens: %w", op, err)
	}

	s.api.SetAccessToken(result.AccessToken)
	s.log.Info("login ok", slog.String("email", redact.Email(creds.Email)))

	return result, nil
}

// Logout инвалидирует сессию на сервере и безусловно чистит локальное
// состояние. Провал сетевого вызова логируется, но не мешает локальной
// очистке: после выхода процесс не должен держать креды ни при каком исходе.
func (s *Service) Logout(ctx context.Context) error {
	const op = "service.Logout"

	tokens, err := s.store.Tokens(ctx)
	if err == nil && tokens.Refresh != "" {
		body := map[string]string{"refreshToken": tokens.Refresh}
		if err := s.api.Post(ctx, "/auth/logout", body, nil); err != nil {
			s.log.Warn("server logout failed", slog.String("error", err.Error()))
		}
	}

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("%s: clear tokens: %w", op, err)
	}

	s.api.SetAccessToken("")
	s.log.Info("logout ok")

	return nil
}

// CurrentUser возвращает текущую личность с бэкенда. Используется при
// бутстрапе сессии и для ревалидации кэша пользователя после мутаций.
func (s *Service) CurrentUser(ctx context.Context) (models.User, error) {
	const op = "service.CurrentUser"

	var user models.User
	if err := s.api.Get(ctx, "/auth/me", &user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// RequestPasswordReset запрашивает письмо сброса пароля. Бэкенд отвечает
// одинаково вне зависимости от существования email (анти-перечисление),
// поэтому успех здесь не означает "письмо отправлено".
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "service.RequestPasswordReset"

	body := map[string]string{"email": email}
	if err := s.api.Post(ctx, "/auth/request-password-reset", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("password reset requested", slog.String("email", redact.Email(email)))

	return nil
}

// ResetPassword устанавливает новый пароль по токену из письма.
// Просроченный/невалидный токен приходит доменной ошибкой бэкенда.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "service.ResetPassword"

	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := s.api.Post(ctx, "/auth/reset-password", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CompleteOnboarding идемпотентно помечает онбординг завершённым.
// Кэш пользователя НЕ обновляется: вызывающий обязан перечитать его через
// CurrentUser, чтобы увидеть новый флаг.
func (s *Service) CompleteOnboarding(ctx context.Context) error {
	const op = "service.CompleteOnboarding"

	if err := s.api.Post(ctx, "/auth/complete-onboarding", struct{}{}, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
