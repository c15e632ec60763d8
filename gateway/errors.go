package gateway

import "errors"

var (
	// ErrRefreshFailed is returned by Refresh when the backend did not hand
	// out a new access token. The session has been cleared by then.
	ErrRefreshFailed = errors.New("gateway: token refresh failed")

	ErrNilRequest = errors.New("gateway: nil request")
)
