package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/schetovod/webclient/internal/storage"
)

// refreshKey — единственный ключ singleflight: сессия одна на процесс.
const refreshKey = "refresh"

// RefreshAccessToken обновляет access-токен по refresh-токену из хранилища.
//
// Параллельные вызовы схлопываются в один сетевой запрос (single-flight):
// все ожидающие получают результат того же обновления. Новый токен
// записывается в хранилище и в память ДО завершения полёта, поэтому
// повторные запросы ожидавших всегда уходят уже с новым токеном.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	const op = "client.RefreshAccessToken"

	token, err, shared := c.refreshGroup.Do(refreshKey, func() (any, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if shared {
		c.log.Debug("refresh attached to in-flight operation")
	}

	return token.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	tokens, err := c.store.Tokens(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNoRefreshToken
		}

		return "", fmt.Errorf("read tokens: %w", err)
	}

	if tokens.Refresh == "" {
		return "", ErrNoRefreshToken
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}

	// 401 самого refresh-эндпоинта в рекурсию не уходит: он в списке authExempt
	// и разбирается как обычная доменная ошибка.
	body := map[string]string{"refreshToken": tokens.Refresh}
	if err := c.Post(ctx, refreshEndpoint, body, &resp); err != nil {
		return "", fmt.Errorf("refresh call: %w", err)
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("refresh call: empty access token in response")
	}

	if err := c.store.SetAccess(ctx, resp.AccessToken); err != nil {
		return "", fmt.Errorf("persist access token: %w", err)
	}

	c.SetAccessToken(resp.AccessToken)
	c.log.Info("access token refreshed", slog.String("endpoint", refreshEndpoint))

	return resp.AccessToken, nil
}
