package paymentrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error
	ListForUser(ctx context.Context, userID int64) ([]model.Payment, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `
		INSERT INTO payments (book_id, user_id, amount, gateway_payment_id, status, kind)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	row := tx.QueryRowContext(ctx, q, p.BookID, p.UserID, p.Amount, p.GatewayPaymentID, p.Status, p.Kind)
	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *repo) ListForUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	const q = `
		SELECT id, book_id, user_id, amount, gateway_payment_id, status, kind, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(
			&p.ID, &p.BookID, &p.UserID, &p.Amount,
			&p.GatewayPaymentID, &p.Status, &p.Kind, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
