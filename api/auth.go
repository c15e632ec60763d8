package api

import (
	"context"
	"net/http"

	"github.com/octabyte/bm-gateway/gateway"
	"github.com/octabyte/bm-gateway/models"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Login signs in and stores the returned credentials on the gateway. The
// refresh cookie set by the backend is kept by the gateway's cookie jar.
func (c *Client) Login(ctx context.Context, in LoginInput) (*models.Credentials, error) {
	return c.startSession(ctx, "/auth/login", in)
}

func (c *Client) Signup(ctx context.Context, in SignupInput) (*models.Credentials, error) {
	return c.startSession(ctx, "/auth/signup", in)
}

func (c *Client) startSession(ctx context.Context, path string, body interface{}) (*models.Credentials, error) {
	var creds models.Credentials
	_, err := c.do(ctx, &gateway.Request{Method: http.MethodPost, Path: path, Body: body, NoRefresh: true}, &creds)
	if err != nil {
		return nil, err
	}
	if err := c.gw.SetSession(ctx, creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Logout revokes the refresh token on the backend and clears the local
// session. The local session is cleared even when the backend call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, callErr := c.do(ctx, &gateway.Request{Method: http.MethodPost, Path: "/auth/logout", NoRefresh: true}, nil)
	if err := c.gw.Logout(ctx); err != nil {
		return err
	}
	return callErr
}

// Me returns the signed-in member as the backend currently sees it.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if _, err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RestoreSession uses the refresh cookie to obtain a session, for example
// when a client starts with a persisted cookie jar but no access token.
func (c *Client) RestoreSession(ctx context.Context) (*models.Credentials, error) {
	return c.gw.Refresh(ctx)
}
