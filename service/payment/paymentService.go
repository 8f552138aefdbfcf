package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"bookstore/model"
	striperepo "bookstore/repository/stripe"
	accesssvc "bookstore/service/access"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNotAvailable = errors.New("book not available for this type of transaction")
	ErrUnknownKind  = errors.New("unknown transaction type")
	ErrNotSucceeded = errors.New("payment has not succeeded")
)

// IntentCreated is relayed to the client so it can confirm the charge.
type IntentCreated struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Amount       int64  `json:"amount"`
}

type BookRepo interface {
	ByID(ctx context.Context, id int64) (*model.Book, error)
}

type PaymentRepo interface {
	Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error
	ListForUser(ctx context.Context, userID int64) ([]model.Payment, error)
}

type EntitlementRepo interface {
	Upsert(ctx context.Context, tx *sql.Tx, e *model.Entitlement) error
}

type Service interface {
	// CreateIntent checks availability, computes the minor-unit amount and
	// opens a gateway intent. No local record is written at this step.
	CreateIntent(ctx context.Context, bookID int64, kind model.EntitlementKind) (*IntentCreated, error)

	// Finalize re-queries the gateway for the intent's authoritative state,
	// persists the payment and upserts the entitlement in one transaction.
	Finalize(ctx context.Context, userID, bookID int64, paymentID string, kind model.EntitlementKind) (*model.Payment, error)

	History(ctx context.Context, userID int64) ([]model.Payment, error)
}

type service struct {
	db  *sql.DB
	br  BookRepo
	pr  PaymentRepo
	er  EntitlementRepo
	gw  striperepo.Repo
	now func() time.Time
}

func New(db *sql.DB, br BookRepo, pr PaymentRepo, er EntitlementRepo, gw striperepo.Repo) Service {
	return &service{db: db, br: br, pr: pr, er: er, gw: gw, now: time.Now}
}

func minorUnits(price float64) int64 { return int64(math.Round(price * 100)) }

func (s *service) CreateIntent(ctx context.Context, bookID int64, kind model.EntitlementKind) (*IntentCreated, error) {
	if !model.ValidKind(kind) {
		return nil, ErrUnknownKind
	}
	b, err := s.br.ByID(ctx, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	var amount int64
	switch {
	case kind == model.KindPurchase && b.AvailableForPurchase:
		amount = minorUnits(b.Price)
	case kind == model.KindRental && b.AvailableForRental:
		amount = minorUnits(b.RentalPrice)
	default:
		return nil, ErrNotAvailable
	}

	intent, err := s.gw.CreateIntent(ctx, amount, "usd")
	if err != nil {
		return nil, err
	}
	return &IntentCreated{
		ClientSecret: intent.ClientSecret,
		PaymentID:    intent.ID,
		Amount:       intent.Amount,
	}, nil
}

func (s *service) Finalize(ctx context.Context, userID, bookID int64, paymentID string, kind model.EntitlementKind) (*model.Payment, error) {
	if !model.ValidKind(kind) {
		return nil, ErrUnknownKind
	}
	if _, err := s.br.ByID(ctx, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	// the gateway is the source of truth for amount and status
	intent, err := s.gw.GetIntent(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != "succeeded" {
		return nil, ErrNotSucceeded
	}

	now := s.now().UTC()
	ent := &model.Entitlement{
		BookID:   bookID,
		UserID:   userID,
		Kind:     kind,
		StartsAt: now,
	}
	if kind == model.KindRental {
		end := now.Add(accesssvc.RentalDuration)
		ent.ExpiresAt = &end
	}

	p := &model.Payment{
		BookID:           bookID,
		UserID:           userID,
		Amount:           intent.Amount,
		GatewayPaymentID: intent.ID,
		Status:           intent.Status,
		Kind:             kind,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.pr.Insert(ctx, tx, p); err != nil {
		return nil, err
	}
	if err = s.er.Upsert(ctx, tx, ent); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) History(ctx context.Context, userID int64) ([]model.Payment, error) {
	return s.pr.ListForUser(ctx, userID)
}
