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

type manualPaymentRequest struct {
	Amount        float64             `json:"amount" validate:"gt=0"`
	Method        enums.PaymentMethod `json:"method" validate:"required,oneof=bkash nagad"`
	SenderNumber  string              `json:"senderNumber" validate:"required"`
	TransactionID string              `json:"transactionId" validate:"required"`
}

type gatewayPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type verifyPaymentRequest struct {
	Status enums.PaymentStatus `json:"status" validate:"required,oneof=approved rejected"`
	Note   string              `json:"note"`
}

func (s *Server) listPayments(c echo.Context) error {
	user, _ := middleware.SessionFromContext(c)
	status := enums.PaymentStatus(c.QueryParam("status"))

	s.data.mu.RLock()
	defer s.data.mu.RUnlock()

	payments := make([]models.Payment, 0, len(s.data.payments))
	for _, p := range s.data.payments {
		if !user.IsAdmin() && p.User != user.ID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		payments = append(payments, p)
	}
	return respond(c, http.StatusOK, "Payments retrieved successfully", payments)
}

func (s *Server) submitManualPayment(c echo.Context) error {
	var req manualPaymentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, _ := middleware.SessionFromContext(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	for _, p := range s.data.payments {
		if p.TransactionID == req.TransactionID {
			return fail(c, http.StatusConflict, "Transaction id already submitted")
		}
	}

	now := time.Now().UTC()
	payment := models.Payment{
		ID:            uuid.NewString(),
		User:          user.ID,
		Amount:        req.Amount,
		Method:        req.Method,
		SenderNumber:  req.SenderNumber,
		TransactionID: req.TransactionID,
		Status:        enums.PaymentStatusPending,
		CreatedAt:     &now,
	}
	s.data.payments = append(s.data.payments, payment)
	return respond(c, http.StatusCreated, "Payment submitted successfully", payment)
}

func (s *Server) initiateGatewayPayment(c echo.Context) error {
	var req gatewayPaymentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, _ := middleware.SessionFromContext(c)

	now := time.Now().UTC()
	payment := models.Payment{
		ID:        uuid.NewString(),
		User:      user.ID,
		Amount:    req.Amount,
		Method:    enums.PaymentMethodGateway,
		Status:    enums.PaymentStatusPending,
		CreatedAt: &now,
	}

	s.data.mu.Lock()
	s.data.payments = append(s.data.payments, payment)
	s.data.mu.Unlock()

	return respond(c, http.StatusCreated, "Payment initiated successfully", models.GatewayPayment{
		PaymentID:   payment.ID,
		RedirectURL: "https://sandbox.payment.example/checkout/" + payment.ID,
	})
}

// verifyPayment approves or rejects a pending payment. Approval also
// approves the member's membership.
func (s *Server) verifyPayment(c echo.Context) error {
	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.data.mu.Lock()
	i := indexOf(s.data.payments, func(p models.Payment) string { return p.ID }, c.Param("id"))
	if i < 0 {
		s.data.mu.Unlock()
		return fail(c, http.StatusNotFound, "Payment not found")
	}
	if s.data.payments[i].Status != enums.PaymentStatusPending {
		s.data.mu.Unlock()
		return fail(c, http.StatusBadRequest, "Payment already verified")
	}
	s.data.payments[i].Status = req.Status
	s.data.payments[i].Note = req.Note
	payment := s.data.payments[i]
	s.data.mu.Unlock()

	membership := enums.MembershipStatusRejected
	if req.Status == enums.PaymentStatusApproved {
		membership = enums.MembershipStatusApproved
	}
	if _, err := s.data.updateUser(payment.User, func(u *models.UserProfile) {
		u.MembershipStatus = membership
	}); err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}

	return respond(c, http.StatusOK, "Payment verified successfully", payment)
}
