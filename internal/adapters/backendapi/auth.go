package backendapi

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffdesk/ui-gateway/internal/ports"
)

// loginResponse is the backend's successful login answer.
type loginResponse struct {
	AuthToken string         `json:"auth_token"`
	User      map[string]any `json:"user"`
}

// Login exchanges credentials for a bearer token and user document.
func (c *Client) Login(ctx context.Context, email, password string) (ports.LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.call(ctx, "POST", "/auth/login", body, &resp); err != nil {
		return ports.LoginResponse{}, err
	}
	return ports.LoginResponse{Token: resp.AuthToken, User: resp.User}, nil
}

// Register creates an account. The backend's response document is returned
// as-is; registration never yields a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (map[string]any, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp map[string]any
	if err := c.call(ctx, "POST", "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DecodeToken extracts the claim document from a bearer token without
// contacting the backend. The backend signed the token; the gateway only
// reads identity claims from it, so the signature is not checked here.
// Unparseable tokens yield nil.
func (c *Client) DecodeToken(token string) map[string]any {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

var _ ports.AuthAPI = (*Client)(nil)
