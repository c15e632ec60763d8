package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/models"
)

type ManualPaymentInput struct {
	Amount        float64             `json:"amount"`
	Method        enums.PaymentMethod `json:"method"`
	SenderNumber  string              `json:"senderNumber"`
	TransactionID string              `json:"transactionId"`
}

// SubmitManualPayment records a bKash or Nagad transfer for admin review.
func (c *Client) SubmitManualPayment(ctx context.Context, in ManualPaymentInput) (*models.Payment, error) {
	if !in.Method.Manual() {
		return nil, fmt.Errorf("api: %q is not a manual payment method", in.Method)
	}
	var payment models.Payment
	if err := c.send(ctx, http.MethodPost, "/payments", in, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// InitiateGatewayPayment starts a gateway checkout. The member completes it
// at the returned redirect URL.
func (c *Client) InitiateGatewayPayment(ctx context.Context, amount float64) (*models.GatewayPayment, error) {
	var out models.GatewayPayment
	if err := c.send(ctx, http.MethodPost, "/payments/gateway", map[string]float64{"amount": amount}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPayments returns the member's own payments, or every payment for an
// admin. An empty status lists all of them.
func (c *Client) ListPayments(ctx context.Context, status enums.PaymentStatus) ([]models.Payment, error) {
	var query map[string]string
	if status != "" {
		query = map[string]string{"status": string(status)}
	}
	var payments []models.Payment
	if _, err := c.get(ctx, "/payments", query, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) VerifyPayment(ctx context.Context, id string, status enums.PaymentStatus, note string) (*models.Payment, error) {
	body := map[string]string{"status": string(status), "note": note}
	var payment models.Payment
	if err := c.send(ctx, http.MethodPatch, "/payments/"+id+"/verify", body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
