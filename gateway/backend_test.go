package gateway

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeBackend serves /auth/refresh-token and treats every other path as a
// protected endpoint that accepts only the current valid token.
type fakeBackend struct {
	t      *testing.T
	server *httptest.Server

	mu          sync.Mutex
	validToken  string
	nextToken   string
	refreshCode int
	refreshBody string
	seen        []seenRequest

	refreshCalls atomic.Int32

	// refreshGate, when set, blocks refresh responses until closed.
	refreshGate chan struct{}
	// onStale, when set, runs before a stale request is answered with 401.
	onStale func(r *http.Request)
	// alwaysUnauthorized answers 401 even for the valid token.
	alwaysUnauthorized bool
}

type seenRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{
		t:           t,
		validToken:  "tok1",
		nextToken:   "tok2",
		refreshCode: http.StatusOK,
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == DefaultRefreshPath {
		b.refreshCalls.Add(1)
		if b.refreshGate != nil {
			<-b.refreshGate
		}
		b.mu.Lock()
		code, body := b.refreshCode, b.refreshBody
		if code == http.StatusOK && body == "" {
			b.validToken = b.nextToken
			body = fmt.Sprintf(`{"success":true,"data":{"user":{"_id":"u1","name":"Rahim","email":"rahim@example.com","role":"user"},"accessToken":%q}}`, b.validToken)
		}
		b.mu.Unlock()
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
		return
	}

	raw, _ := io.ReadAll(r.Body)
	auth := r.Header.Get("Authorization")

	b.mu.Lock()
	b.seen = append(b.seen, seenRequest{Method: r.Method, Path: r.URL.Path, Authorization: auth, Body: string(raw)})
	valid := auth == "Bearer "+b.validToken && !b.alwaysUnauthorized
	onStale := b.onStale
	b.mu.Unlock()

	switch {
	case r.URL.Path == "/missing":
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Not found"}`)
	case r.URL.Path == "/boom":
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"success":false,"message":"Internal server error"}`)
	case !valid:
		if onStale != nil {
			onStale(r)
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"message":"You are not authorized"}`)
	default:
		_, _ = io.WriteString(w, `{"success":true,"data":[{"_id":"p1","title":"Solar farm","budget":500000}]}`)
	}
}

func (b *fakeBackend) requests(path string) []seenRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []seenRequest
	for _, s := range b.seen {
		if s.Path == path {
			out = append(out, s)
		}
	}
	return out
}

func (b *fakeBackend) setRefresh(code int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshCode, b.refreshBody = code, body
}
