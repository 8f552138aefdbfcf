// model/entitlement.go
package model

import "time"

type EntitlementKind string

const (
	KindPurchase EntitlementKind = "purchase"
	KindRental   EntitlementKind = "rental"
)

func ValidKind(k EntitlementKind) bool {
	return k == KindPurchase || k == KindRental
}

// Entitlement is one row of the (book, user, kind) access table. Purchases
// are permanent (ExpiresAt nil); rentals carry a fixed end timestamp.
type Entitlement struct {
	BookID    int64           `json:"book_id"`
	UserID    int64           `json:"user_id"`
	Kind      EntitlementKind `json:"kind"`
	StartsAt  time.Time       `json:"starts_at"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

// EntitlementRow is the display shape with the user expanded to a username.
type EntitlementRow struct {
	UserID    int64      `json:"user_id"`
	Username  string     `json:"username"`
	StartsAt  time.Time  `json:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
