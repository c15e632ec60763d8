package events

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/gateway"
	"github.com/octabyte/bm-gateway/models"
	"github.com/octabyte/bm-gateway/utils"
)

type message struct {
	key  string
	body []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []message
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, key string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, message{key, body})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func decode(t *testing.T, m message) Event {
	t.Helper()
	var e Event
	require.NoError(t, utils.BytesToStruct(m.body, &e))
	return e
}

func TestNotifierPublishesLifecycle(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, "membercli", zap.NewNop())
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	n.SessionSet(context.Background(), models.Credentials{
		User:        models.UserProfile{ID: "u7", Role: enums.RoleAdmin},
		AccessToken: "secret-token",
	})
	n.SessionCleared(context.Background())

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, enums.EventSessionSet, pub.msgs[0].key)
	assert.NotContains(t, string(pub.msgs[0].body), "secret-token")

	set := decode(t, pub.msgs[0])
	assert.Equal(t, "u7", set.Data.UserID)
	assert.Equal(t, enums.RoleAdmin, set.Data.Role)
	assert.Equal(t, "membercli", set.Data.Source)
	assert.NotEmpty(t, set.Idempotency)
	assert.Equal(t, 2026, set.OccurredAt.Year())

	cleared := decode(t, pub.msgs[1])
	assert.Equal(t, enums.EventSessionCleared, cleared.Name)
	assert.Equal(t, "u7", cleared.Data.UserID)
	assert.NotEqual(t, set.Idempotency, cleared.Idempotency)
}

func TestNotifierLogsPublishErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pub := &fakePublisher{err: errors.New("channel closed")}
	n := NewNotifier(pub, "membercli", zap.New(core))

	assert.NotPanics(t, func() { n.SessionCleared(context.Background()) })
	assert.Equal(t, 1, logs.FilterMessage("failed to publish session event").Len())
}

func TestNotifierWiredToGateway(t *testing.T) {
	// Every call, refresh included, is rejected.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	pub := &fakePublisher{}
	n := NewNotifier(pub, "test", zap.NewNop())
	g, err := gateway.New(gateway.Config{BaseURL: server.URL}, n.GatewayOptions()...)
	require.NoError(t, err)

	require.NoError(t, g.SetSession(context.Background(), models.Credentials{
		User:        models.UserProfile{ID: "u1"},
		AccessToken: "tok1",
	}))
	resp, err := g.Get(context.Background(), "/projects", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, enums.EventSessionSet, pub.msgs[0].key)
	assert.Equal(t, enums.EventSessionCleared, pub.msgs[1].key)
}
