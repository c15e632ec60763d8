package gateway

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Request describes one backend call. It is rebuilt into a fresh resty
// request for every attempt, so Body must be replayable; an io.Reader body
// is drained into memory on first use.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	QueryParams map[string]string
	Headers     map[string]string
	// Result, when set, receives the decoded JSON body of a 2xx response.
	Result interface{}
	// NoRefresh returns a 401 as is. Login and signup answer 401 for bad
	// credentials, which says nothing about the session.
	NoRefresh bool
}

func (r *Request) normalize() error {
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	r.Method = strings.ToUpper(r.Method)
	if r.Path == "" {
		return fmt.Errorf("gateway: request path is empty")
	}
	if reader, ok := r.Body.(io.Reader); ok {
		raw, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("gateway: read request body: %w", err)
		}
		r.Body = raw
	}
	return nil
}

func (r *Request) apply(req *resty.Request) {
	if len(r.QueryParams) > 0 {
		req.SetQueryParams(r.QueryParams)
	}
	if len(r.Headers) > 0 {
		req.SetHeaders(r.Headers)
	}
	if r.Body != nil {
		req.SetBody(r.Body)
	}
	if r.Result != nil {
		req.SetResult(r.Result)
	}
}

// operation names the span of a call after the first path segment,
// "/projects/42" becomes "projects".
func (r *Request) operation() string {
	trimmed := strings.Trim(r.Path, "/")
	if i := strings.IndexAny(trimmed, "/?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
