package api

import (
	"context"
	"fmt"
)

// LoginResponse is the session issued by a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType,omitempty"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Login authenticates and installs the returned token on the client for
// subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.post(ctx, "/api/auth/login", payload, &resp); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// RegisterResponse is the account record returned by registration.
// Enabled is false while the account awaits admin approval; older
// backends omit the field entirely.
type RegisterResponse struct {
	Username string `json:"username"`
	Enabled  *bool  `json:"enabled"`
}

// Pending reports whether the new account still needs approval.
func (r *RegisterResponse) Pending() bool {
	return r.Enabled != nil && !*r.Enabled
}

// Register creates a new account; it does not log in.
func (c *Client) Register(ctx context.Context, username, password string) (*RegisterResponse, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp RegisterResponse
	if err := c.post(ctx, "/api/auth/register", payload, &resp); err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}
	return &resp, nil
}
