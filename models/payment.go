package models

import (
	"time"

	"github.com/octabyte/bm-gateway/enums"
)

// Payment is a membership payment, either submitted manually with a mobile
// wallet transaction id or created by the payment gateway flow.
type Payment struct {
	ID            string              `json:"_id,omitempty"`
	User          string              `json:"user,omitempty"`
	Amount        float64             `json:"amount"`
	Method        enums.PaymentMethod `json:"method"`
	SenderNumber  string              `json:"senderNumber,omitempty"`
	TransactionID string              `json:"transactionId,omitempty"`
	Status        enums.PaymentStatus `json:"status,omitempty"`
	Note          string              `json:"note,omitempty"`
	CreatedAt     *time.Time          `json:"createdAt,omitempty"`
}

// GatewayPayment is returned when a gateway checkout is started.
type GatewayPayment struct {
	PaymentID   string `json:"paymentId"`
	RedirectURL string `json:"url"`
}
