package models

import "time"

type Notice struct {
	ID          string     `json:"_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type Banner struct {
	ID       string `json:"_id,omitempty"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"image"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"isActive"`
}
