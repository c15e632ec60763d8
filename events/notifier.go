// Package events publishes session lifecycle changes so other services can
// react to a member signing in or being logged out.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/gateway"
	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/queue"
	"github.com/octabyte/bm-gateway/utils"
)

type Event struct {
	Name        string      `json:"name"`
	Data        SessionData `json:"data"`
	Idempotency string      `json:"idempotency"`
	OccurredAt  time.Time   `json:"occurredAt"`
}

// SessionData never carries the access token.
type SessionData struct {
	UserID string     `json:"userId,omitempty"`
	Role   enums.Role `json:"role,omitempty"`
	Source string     `json:"source,omitempty"`
}

type Notifier struct {
	publisher queue.Publisher
	logger    *zap.Logger
	source    string
	now       func() time.Time

	mu       sync.Mutex
	lastUser models.UserProfile
}

// NewNotifier publishes through p. source identifies this client in every
// event, e.g. the CLI name.
func NewNotifier(p queue.Publisher, source string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.L().Named("events")
	}
	return &Notifier{publisher: p, logger: logger, source: source, now: time.Now}
}

// GatewayOptions wires the notifier to a gateway's session callbacks.
func (n *Notifier) GatewayOptions() []gateway.Option {
	return []gateway.Option{
		gateway.WithOnSessionSet(n.SessionSet),
		gateway.WithOnLogout(n.SessionCleared),
	}
}

func (n *Notifier) SessionSet(ctx context.Context, creds models.Credentials) {
	n.mu.Lock()
	n.lastUser = creds.User
	n.mu.Unlock()

	n.publish(ctx, enums.EventSessionSet, creds.User)
}

func (n *Notifier) SessionCleared(ctx context.Context) {
	n.mu.Lock()
	user := n.lastUser
	n.lastUser = models.UserProfile{}
	n.mu.Unlock()

	n.publish(ctx, enums.EventSessionCleared, user)
}

// publish logs failures instead of returning them; a broker outage must not
// break the caller's request.
func (n *Notifier) publish(ctx context.Context, name string, user models.UserProfile) {
	event := Event{
		Name: name,
		Data: SessionData{
			UserID: user.ID,
			Role:   user.Role,
			Source: n.source,
		},
		Idempotency: uuid.NewString(),
		OccurredAt:  n.now().UTC(),
	}

	body, err := utils.StructToBytes(event)
	if err != nil {
		n.logger.Error("failed to encode session event", zap.String("event", name), zap.Error(err))
		return
	}
	if err := n.publisher.Publish(ctx, name, body); err != nil {
		n.logger.Error("failed to publish session event", zap.String("event", name), zap.Error(err))
	}
}
