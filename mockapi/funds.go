package mockapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/interfaces/http/echo/middleware"
	"github.com/octabyte/bm-gateway/models"
)

type fundEntryRequest struct {
	Type      enums.FundEntryType `json:"type" validate:"required,oneof=deposit expense"`
	Amount    float64             `json:"amount" validate:"gt=0"`
	Purpose   string              `json:"purpose" validate:"required"`
	Reference string              `json:"reference"`
	Date      *time.Time          `json:"date"`
}

func (s *Server) listFundEntries(c echo.Context) error {
	kind := enums.FundEntryType(c.QueryParam("type"))

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	entries := make([]models.FundEntry, 0, len(s.data.funds))
	for _, e := range s.data.funds {
		if kind == "" || e.Type == kind {
			entries = append(entries, e)
		}
	}
	return respond(c, http.StatusOK, "Fund entries retrieved successfully", entries)
}

func (s *Server) fundSummary(c echo.Context) error {
	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	var summary models.FundSummary
	for _, e := range s.data.funds {
		switch e.Type {
		case enums.FundEntryDeposit:
			summary.TotalDeposit += e.Amount
		case enums.FundEntryExpense:
			summary.TotalExpense += e.Amount
		}
	}
	summary.CurrentAmount = summary.TotalDeposit - summary.TotalExpense
	return respond(c, http.StatusOK, "Fund summary retrieved successfully", summary)
}

func (s *Server) createFundEntry(c echo.Context) error {
	var req fundEntryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, _ := middleware.SessionFromContext(c)

	date := req.Date
	if date == nil {
		now := time.Now().UTC()
		date = &now
	}
	entry := models.FundEntry{
		ID:         uuid.NewString(),
		Type:       req.Type,
		Amount:     req.Amount,
		Purpose:    req.Purpose,
		Reference:  req.Reference,
		RecordedBy: user.ID,
		RecordedAt: date,
	}

	s.data.mu.Lock()
	s.data.funds = append(s.data.funds, entry)
	s.data.mu.Unlock()

	return respond(c, http.StatusCreated, "Fund entry recorded successfully", entry)
}
