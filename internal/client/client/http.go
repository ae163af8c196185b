package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/dmitrijs2005/shopnet/internal/logging"
	"github.com/dmitrijs2005/shopnet/internal/netx"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient talks to the ShopNet REST API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the server at baseURL. A zero timeout
// means no per-request limit beyond the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("module", "httpclient"),
	}
}

// SetToken sets the bearer token sent with every subsequent request. An
// empty token makes requests anonymous.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.currentToken(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode/100 != 2 {
		return mapError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapError turns a non-2xx response into a *ServerError wrapping the
// matching sentinel.
func mapError(resp *http.Response) error {
	var er api.ErrorResponse
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(b, &er)

	e := &ServerError{Status: resp.StatusCode, Message: er.Error}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		e.kind = ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		e.kind = ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		e.kind = ErrConflict
	case resp.StatusCode >= http.StatusInternalServerError:
		e.kind = ErrUnavailable
	}
	return e
}

func (c *HTTPClient) Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error) {
	var out api.AuthResponse
	req := api.RegisterRequest{Email: email, Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	var out api.AuthResponse
	req := api.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var out api.TokenResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/users/refresh", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*api.User, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) UpdateAccountType(ctx context.Context, accountType api.AccountType, profile api.ProfileFields) (*api.User, error) {
	var out api.UserResponse
	req := api.AccountTypeRequest{AccountType: accountType, Profile: profile}
	if err := c.do(ctx, http.MethodPut, "/api/users/account-type", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/settings/profile", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, next string) error {
	req := api.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return c.do(ctx, http.MethodPut, "/api/settings/password", req, nil)
}

func (c *HTTPClient) UpdateNotificationSettings(ctx context.Context, req api.NotificationSettingsRequest) (*api.User, error) {
	var out api.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/settings/notifications", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, sellerView bool) ([]api.Product, error) {
	path := "/api/products"
	if sellerView {
		path += "?view=seller"
	}
	var out []api.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*api.Product, error) {
	var out api.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, req api.ProductRequest) (*api.Product, error) {
	var out api.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, req api.ProductRequest) (*api.Product, error) {
	var out api.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListNotifications(ctx context.Context) ([]api.Notification, error) {
	var out []api.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) (*api.Notification, error) {
	var out api.Notification
	if err := c.do(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/mark-all-read", nil, nil)
}

func (c *HTTPClient) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notifications/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) PresignImage(ctx context.Context) (*api.PresignResponse, error) {
	var out api.PresignResponse
	if err := c.do(ctx, http.MethodPost, "/api/images/presign", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage asks the server for a presigned URL, PUTs data to it and
// returns the public URL of the stored image.
func (c *HTTPClient) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	p, err := c.PresignImage(ctx)
	if err != nil {
		return "", err
	}
	if err := netx.UploadToPresignedURL(ctx, c.http, p.UploadURL, data, contentType); err != nil {
		return "", fmt.Errorf("image upload: %w", err)
	}
	return p.URL, nil
}
