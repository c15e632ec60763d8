package utils

import (
	"github.com/tidwall/gjson"
)

// EnvelopeData returns the value at path inside the "data" member of a
// backend response envelope. ok is false when the body is not JSON or the
// path is missing.
func EnvelopeData(body []byte, path string) (gjson.Result, bool) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, false
	}
	full := "data"
	if path != "" {
		full += "." + path
	}
	res := gjson.GetBytes(body, full)
	return res, res.Exists()
}

// EnvelopeMessage extracts the human readable message of an envelope,
// falling back to the supplied default.
func EnvelopeMessage(body []byte, fallback string) string {
	if !gjson.ValidBytes(body) {
		return fallback
	}
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	return fallback
}
