package models

import (
	"time"

	"github.com/octabyte/bm-gateway/enums"
)

// FundEntry is one line of the fund ledger.
type FundEntry struct {
	ID         string              `json:"_id,omitempty"`
	Type       enums.FundEntryType `json:"type"`
	Amount     float64             `json:"amount"`
	Purpose    string              `json:"purpose"`
	Reference  string              `json:"reference,omitempty"`
	RecordedBy string              `json:"recordedBy,omitempty"`
	RecordedAt *time.Time          `json:"date,omitempty"`
}

type FundSummary struct {
	TotalDeposit  float64 `json:"totalDeposit"`
	TotalExpense  float64 `json:"totalExpense"`
	CurrentAmount float64 `json:"currentAmount"`
}
