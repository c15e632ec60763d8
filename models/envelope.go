package models

import "github.com/goccy/go-json"

// Envelope is the response wrapper used by every backend endpoint.
type Envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode,omitempty"`
	Message    string          `json:"message,omitempty"`
	Meta       *PageMeta       `json:"meta,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type PageMeta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}
