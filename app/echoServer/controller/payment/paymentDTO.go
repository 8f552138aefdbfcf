package payment

type IntentReq struct {
	BookID int64  `json:"book_id" validate:"required,gt=0"`
	Type   string `json:"type" validate:"required,oneof=purchase rental"`
}

// FinalizeReq deliberately omits amount and status: both are re-read from
// the gateway rather than trusted from the caller.
type FinalizeReq struct {
	BookID    int64  `json:"book_id" validate:"required,gt=0"`
	PaymentID string `json:"payment_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=purchase rental"`
}
