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
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Claims mirrors the decoded token the server returns from /verify.
type Claims struct {
	UserID        string `json:"id"`
	Role          string `json:"role"`
	OriginAddress string `json:"originAddress,omitempty"`
	IssuedAt      int64  `json:"iat"`
	ExpiresAt     int64  `json:"exp"`
	TokenID       string `json:"jti"`
}

// HTTPClient calls the gophauth JSON API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type messageBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password, role string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	}, &out)
	return out.Message, err
}

// Login returns the session token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out.Token, err
}

func (c *HTTPClient) Verify(ctx context.Context, token string) (*Claims, error) {
	var out struct {
		Decoded *Claims `json:"decoded"`
	}
	if err := c.do(ctx, http.MethodGet, "/verify", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Decoded, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/logout", token, nil, &out)
	return out.Message, err
}

func (c *HTTPClient) Admin(ctx context.Context, token string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodGet, "/admin", token, nil, &out)
	return out.Message, err
}

// Health returns nil when /healthz answers 200.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Code, apiErr.Message = e.Code, e.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
