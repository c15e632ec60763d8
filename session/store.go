// Package session holds the credentials of the signed-in member. A Store is
// owned by one gateway; the gateway is its only writer.
package session

import (
	"context"
	"errors"

	"github.com/octabyte/bm-gateway/models"
)

var ErrEmptyToken = errors.New("session: access token is empty")

// Store keeps the current credentials. Save replaces user and token
// together; Load returns nil when nobody is signed in.
type Store interface {
	Load(ctx context.Context) (*models.Credentials, error)
	Save(ctx context.Context, creds models.Credentials) error
	Clear(ctx context.Context) error
}
