package gateway

import (
	"context"
	"fmt"

	"github.com/octabyte/bm-gateway/models"
)

// Session returns the current credentials, or nil when logged out.
func (g *Gateway) Session(ctx context.Context) (*models.Credentials, error) {
	creds, _, err := g.snapshot(ctx)
	return creds, err
}

// SetSession stores credentials obtained outside the refresh flow, such as
// a login or signup response. It waits for a running refresh to finish.
func (g *Gateway) SetSession(ctx context.Context, creds models.Credentials) error {
	if err := g.lock.Acquire(ctx); err != nil {
		return err
	}
	err := g.commit(ctx, creds)
	g.lock.Release()
	if err != nil {
		return err
	}

	g.fireSessionSet(ctx, creds)
	return nil
}

// Logout clears the session. It does not call the backend. OnLogout
// callbacks fire only when a session was actually removed.
func (g *Gateway) Logout(ctx context.Context) error {
	if err := g.lock.Acquire(ctx); err != nil {
		return err
	}
	hadSession, err := g.clear(ctx)
	g.lock.Release()
	if err != nil {
		return err
	}

	if hadSession {
		g.fireLogout(ctx)
	}
	return nil
}

func (g *Gateway) snapshot(ctx context.Context) (*models.Credentials, uint64, error) {
	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	creds, err := g.store.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("gateway: %w", err)
	}
	return creds, g.epoch, nil
}

func (g *Gateway) currentEpoch() uint64 {
	g.stateMu.RLock()
	defer g.stateMu.RUnlock()
	return g.epoch
}

func (g *Gateway) commit(ctx context.Context, creds models.Credentials) error {
	g.stateMu.Lock()
	defer g.stateMu.Unlock()

	if err := g.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	g.epoch++
	return nil
}

// clear empties the store and reports whether it held a session. When the
// store cannot be read the session is assumed present.
func (g *Gateway) clear(ctx context.Context) (bool, error) {
	g.stateMu.Lock()
	defer g.stateMu.Unlock()

	creds, loadErr := g.store.Load(ctx)
	hadSession := loadErr != nil || creds.Authenticated()

	// A failed clear still bumps the epoch: the session is unusable either way.
	g.epoch++
	if err := g.store.Clear(ctx); err != nil {
		return hadSession, fmt.Errorf("gateway: %w", err)
	}
	return hadSession, nil
}

func (g *Gateway) fireSessionSet(ctx context.Context, creds models.Credentials) {
	for _, fn := range g.onSessionSet {
		fn(ctx, creds)
	}
}

func (g *Gateway) fireLogout(ctx context.Context) {
	g.logger.Info("session cleared")
	for _, fn := range g.onLogout {
		fn(ctx)
	}
}
