// client — единая точка выхода всех аутентифицированных запросов к бэкенд-API.
//
// Инкапсулирует подстановку bearer-токена и протокол refresh-and-retry:
// одиночный 401 прозрачно чинится обновлением access-токена и единственным
// повтором запроса; 403 и провал refresh завершаются принудительной
// навигацией. Ошибки никогда не глотаются молча.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/schetovod/webclient/internal/storage"
)

const (
	loginEndpoint   = "/auth/login"
	refreshEndpoint = "/auth/refresh"

	defaultTimeout = 10 * time.Second
)

// Маршруты принудительной навигации при фатальных исходах.
const (
	SessionExpiredRoute = "/login?session=expired"
	ForbiddenRoute      = "/forbidden"
)

// attempt — явное перечисление попыток запроса. Инвариант «повтор ровно один
// раз» зашит в тип: после attemptRetried повторов не бывает.
type attempt int

const (
	attemptFirst attempt = iota
	attemptRetried
)

// Doer — минимальный контракт HTTP-транспорта (обычно *http.Client).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Navigator — принудительная навигация UI как инъецируемая зависимость:
// ядро протокола тестируется без браузера.
type Navigator interface {
	Navigate(route string)
}

// Options — настройки клиента.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// HTTPClient — переопределение транспорта (тесты). nil — http.Client с Timeout.
	HTTPClient Doer
	Logger     *slog.Logger
}

// Client — HTTP-клиент бэкенд-API с автоматическим refresh-and-retry.
//
// Access-токен живёт в памяти (кэш поверх хранилища, заполняется при
// бутстрапе); refresh-токен клиент читает только из хранилища в момент
// обновления.
type Client struct {
	baseURL   string
	userAgent string
	http      Doer
	store     storage.TokenStore
	nav       Navigator
	log       *slog.Logger

	mu     sync.RWMutex
	access string

	refreshGroup singleflight.Group
}

// New создаёт клиент поверх хранилища токенов и навигатора.
func New(store storage.TokenStore, nav Navigator, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		http:      httpClient,
		store:     store,
		nav:       nav,
		log:       logger,
	}
}

// SetAccessToken заменяет access-токен в памяти. Хранилище не трогает.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.access = token
}

// AccessToken возвращает текущий access-токен из памяти ("" — токена нет).
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.access
}

// Get выполняет GET и декодирует 2xx-ответ в out (nil — тело игнорируется).
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post выполняет POST с JSON-телом body (nil — без тела).
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Put выполняет PUT с JSON-телом.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, out)
}

// Patch выполняет PATCH с JSON-телом.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, body, out)
}

// Delete выполняет DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, out)
}

// Upload выполняет POST с готовым multipart-телом. Content-Type передаётся
// вызывающим (содержит boundary); авторизация и retry — как у остальных
// запросов. Тело принимается байтами, чтобы повтор после refresh мог
// перечитать его с начала.
func (c *Client) Upload(ctx context.Context, endpoint, contentType string, payload []byte, out any) error {
	return c.execute(ctx, http.MethodPost, endpoint, contentType, payload, out, attemptFirst)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	const op = "client.do"

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}
	}

	return c.execute(ctx, method, endpoint, "application/json", payload, out, attemptFirst)
}

// execute — один проход протокола запроса (§ алгоритм):
// 401 на первой попытке (вне login/refresh) → refresh и единственный повтор;
// 403 → навигация на forbidden; прочие не-2xx → *APIError с сообщением сервера.
func (c *Client) execute(ctx context.Context, method, endpoint, contentType string, payload []byte, out any, att attempt) error {
	const op = "client.execute"

	// Проактивная проверка: видимо истёкший JWT обновляем до запроса, не
	// дожидаясь 401. Провал здесь не фатален — реактивная ветка ниже
	// разберётся с настоящим 401.
	if att == attemptFirst && !authExempt(endpoint) {
		if token := c.AccessToken(); token != "" && tokenVisiblyExpired(token) {
			if _, err := c.RefreshAccessToken(ctx); err != nil {
				c.log.Debug("proactive refresh failed", slog.String("endpoint", endpoint))
			}
		}
	}

	req, err := c.newRequest(ctx, method, endpoint, contentType, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", op, method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("api request",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Bool("retry", att == attemptRetried),
		slog.Duration("duration", time.Since(started)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized && att == attemptFirst && !authExempt(endpoint):
		if _, err := c.RefreshAccessToken(ctx); err != nil {
			return c.failSession(ctx, fmt.Errorf("%s: %s %s: %w", op, method, endpoint, err))
		}

		return c.execute(ctx, method, endpoint, contentType, payload, out, attemptRetried)

	case resp.StatusCode == http.StatusForbidden:
		c.nav.Navigate(ForbiddenRoute)
		return fmt.Errorf("%s: %s %s: %w", op, method, endpoint, ErrAccessDenied)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s %s: %w", op, method, endpoint, parseAPIError(resp.StatusCode, body))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint, contentType string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}

	if payload != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

// failSession завершает сессию после провала refresh: чистит хранилище и
// память, уводит UI на login с маркером истёкшей сессии.
func (c *Client) failSession(ctx context.Context, cause error) error {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error("failed to clear tokens", slog.String("error", err.Error()))
	}

	c.SetAccessToken("")
	c.nav.Navigate(SessionExpiredRoute)

	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

// authExempt — эндпоинты, для которых 401 не запускает refresh:
// на login это доменная ошибка (неверные креды), на refresh — провал самого
// протокола обновления.
func authExempt(endpoint string) bool {
	return endpoint == loginEndpoint || endpoint == refreshEndpoint
}
