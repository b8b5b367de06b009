package upstream

import (
	"context"
	"net/http"
)

type LoginUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// FetchCSRF obtains a fresh CSRF token. It is required before state-changing
// calls made under session-cookie authentication.
func (c *Client) FetchCSRF(ctx context.Context) error {
	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/csrf/", "", nil, &body); err != nil {
		return err
	}
	c.mu.Lock()
	c.csrfToken = body.CSRFToken
	c.mu.Unlock()
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	// Best effort; bearer-token logins work without it.
	if err := c.FetchCSRF(ctx); err != nil && c.logger != nil {
		c.logger.Warn("CSRF fetch before login failed", "error", err)
	}

	payload := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", "", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout/", token, nil, nil)
}
