package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"pethealth/internal/domain"
)

// ErrUnauthorized is returned when the server rejects the session
// token. The facade drops its token before returning it.
var ErrUnauthorized = errors.New("client: session expired")

const requestTimeout = 15 * time.Second

// Facade wraps the REST surface of the server: auth, notification
// reads and notification acknowledgements. One Facade is shared by
// the transport and the UI and is safe for concurrent use.
type Facade struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string

	// onUnauthorized fires once per token: the first 401 drops the
	// token and invokes the callback; later 401s with no token set
	// return ErrUnauthorized silently.
	onUnauthorized func()
}

func NewFacade(baseURL string) *Facade {
	return &Facade{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// OnUnauthorized registers the session-expiry callback.
func (f *Facade) OnUnauthorized(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onUnauthorized = fn
}

// SetToken installs a session token, re-arming the expiry callback.
func (f *Facade) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// Token returns the current session token, empty after expiry.
func (f *Facade) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// BaseURL returns the API base the facade was built with.
func (f *Facade) BaseURL() string {
	return f.baseURL
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// do issues one request and decodes the success envelope into out.
// A 401 drops the token and fires the expiry callback exactly once.
func (f *Facade) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := f.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		f.expireSession()
		return ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (f *Facade) expireSession() {
	f.mu.Lock()
	hadToken := f.token != ""
	f.token = ""
	fn := f.onUnauthorized
	f.mu.Unlock()

	if hadToken && fn != nil {
		fn()
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Login exchanges credentials for a session token and installs it.
func (f *Facade) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var out loginResponse
	if err := f.do(ctx, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	f.SetToken(out.AccessToken)
	return out.User, nil
}

type notificationPage struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Total         int64                 `json:"total"`
}

// ListNotifications fetches one page, newest first.
func (f *Facade) ListNotifications(ctx context.Context, limit, offset int) ([]domain.Notification, int64, error) {
	var out notificationPage
	path := fmt.Sprintf("/api/v1/notifications?limit=%d&offset=%d", limit, offset)
	if err := f.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Notifications, out.UnreadCount, nil
}

// UnreadCount fetches the server-side unread counter.
func (f *Facade) UnreadCount(ctx context.Context) (int64, error) {
	var out struct {
		UnreadCount int64 `json:"unread_count"`
	}
	if err := f.do(ctx, http.MethodGet, "/api/v1/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

// MarkRead acknowledges one notification.
func (f *Facade) MarkRead(ctx context.Context, id string) error {
	return f.do(ctx, http.MethodPatch, "/api/v1/notifications/"+id+"/read", nil, nil)
}

// MarkAllRead acknowledges every notification of the session user.
func (f *Facade) MarkAllRead(ctx context.Context) error {
	return f.do(ctx, http.MethodPatch, "/api/v1/notifications/read-all", nil, nil)
}

// MarkCompleted flags one notification's underlying task as done.
func (f *Facade) MarkCompleted(ctx context.Context, id string) error {
	return f.do(ctx, http.MethodPatch, "/api/v1/notifications/"+id+"/mark-completed", nil, nil)
}

// DeleteNotification removes one notification server-side.
func (f *Facade) DeleteNotification(ctx context.Context, id string) error {
	return f.do(ctx, http.MethodDelete, "/api/v1/notifications/"+id, nil, nil)
}
