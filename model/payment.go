package model

import "time"

// Payment is the immutable local record of a finalized gateway charge.
// Amount is in minor currency units as reported by the gateway.
type Payment struct {
	ID               int64           `json:"id"`
	BookID           int64           `json:"book_id"`
	UserID           int64           `json:"user_id"`
	Amount           int64           `json:"amount"`
	GatewayPaymentID string          `json:"gateway_payment_id"`
	Status           string          `json:"status"`
	Kind             EntitlementKind `json:"kind"`
	CreatedAt        time.Time       `json:"created_at"`
}
