package striperepo

import "context"

// Intent mirrors the gateway's payment-intent object, reduced to the fields
// this system reads.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}

type Repo interface {
	// CreateIntent opens a card intent for amount in minor units.
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)

	// GetIntent fetches the authoritative state of an existing intent.
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
