package enums

type PaymentMethod string

const (
	PaymentMethodBkash   PaymentMethod = "bkash"
	PaymentMethodNagad   PaymentMethod = "nagad"
	PaymentMethodGateway PaymentMethod = "gateway"
)

// Manual reports whether the method is a mobile wallet transfer that an
// admin has to verify by hand.
func (m PaymentMethod) Manual() bool {
	return m == PaymentMethodBkash || m == PaymentMethodNagad
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)
