package models

import (
	"time"

	"github.com/octabyte/bm-gateway/enums"
)

// Project is an investment opportunity offered to members.
type Project struct {
	ID             string              `json:"_id,omitempty"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Location       string              `json:"location,omitempty"`
	Budget         float64             `json:"budget"`
	ExpectedReturn float64             `json:"expectedReturn,omitempty"`
	Status         enums.ProjectStatus `json:"status,omitempty"`
	Images         []string            `json:"images,omitempty"`
	StartDate      *time.Time          `json:"startDate,omitempty"`
	EndDate        *time.Time          `json:"endDate,omitempty"`
	CreatedAt      *time.Time          `json:"createdAt,omitempty"`
}
