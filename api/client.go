// Package api is a typed client for the membership backend. Every call goes
// through a gateway.Gateway, so it is authenticated and survives an expired
// access token.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/octabyte/bm-gateway/gateway"
	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/utils"
)

// Error is returned for every non-2xx response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	gw *gateway.Gateway
}

func New(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

// Gateway exposes the underlying gateway, e.g. to read the session.
func (c *Client) Gateway() *gateway.Gateway {
	return c.gw
}

func (c *Client) do(ctx context.Context, req *gateway.Request, out interface{}) (*models.PageMeta, error) {
	resp, err := c.gw.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, newError(resp)
	}

	var env models.Envelope
	if err := utils.BytesToStruct(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := utils.BytesToStruct(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s data: %w", req.Method, req.Path, err)
		}
	}
	return env.Meta, nil
}

func newError(resp *resty.Response) *Error {
	return &Error{
		StatusCode: resp.StatusCode(),
		Message:    utils.EnvelopeMessage(resp.Body(), http.StatusText(resp.StatusCode())),
	}
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) (*models.PageMeta, error) {
	return c.do(ctx, &gateway.Request{Method: http.MethodGet, Path: path, QueryParams: query}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.do(ctx, &gateway.Request{Method: method, Path: path, Body: body}, out)
	return err
}
