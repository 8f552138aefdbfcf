// repository/entitlement/repo.go
package entitlementrepo

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
)

type Repo interface {
	// Upsert inserts or refreshes the (book, user, kind) row. The unique
	// index makes concurrent finalizations converge on a single row.
	Upsert(ctx context.Context, tx *sql.Tx, e *model.Entitlement) error

	// Find returns the row for (book, user, kind), or nil when absent.
	Find(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error)

	// HasAny reports whether the user holds any entitlement on the book,
	// expired or not.
	HasAny(ctx context.Context, bookID, userID int64) (bool, error)

	// ListForBook returns the book's entitlement rows of one kind with
	// usernames expanded.
	ListForBook(ctx context.Context, bookID int64, kind model.EntitlementKind) ([]model.EntitlementRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Upsert(ctx context.Context, tx *sql.Tx, e *model.Entitlement) error {
	const q = `
		INSERT INTO entitlements (book_id, user_id, kind, starts_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (book_id, user_id, kind) DO UPDATE
		SET starts_at = EXCLUDED.starts_at,
		    expires_at = EXCLUDED.expires_at`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, q, e.BookID, e.UserID, e.Kind, e.StartsAt, e.ExpiresAt)
	} else {
		_, err = r.db.ExecContext(ctx, q, e.BookID, e.UserID, e.Kind, e.StartsAt, e.ExpiresAt)
	}
	return err
}

func (r *repo) Find(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error) {
	const q = `
		SELECT book_id, user_id, kind, starts_at, expires_at
		FROM entitlements
		WHERE book_id = $1 AND user_id = $2 AND kind = $3`
	e := &model.Entitlement{}
	var expires sql.NullTime
	err := r.db.QueryRowContext(ctx, q, bookID, userID, kind).Scan(
		&e.BookID, &e.UserID, &e.Kind, &e.StartsAt, &expires,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time
		e.ExpiresAt = &t
	}
	return e, nil
}

func (r *repo) HasAny(ctx context.Context, bookID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM entitlements
			WHERE book_id = $1 AND user_id = $2
		)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, bookID, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *repo) ListForBook(ctx context.Context, bookID int64, kind model.EntitlementKind) ([]model.EntitlementRow, error) {
	const q = `
			SELECT e.user_id, u.username, e.starts_at, e.expires_at
			FROM entitlements e
			JOIN users u ON u.id = e.user_id
			WHERE e.book_id = $1 AND e.kind = $2
			ORDER BY e.starts_at DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EntitlementRow
	for rows.Next() {
		var row model.EntitlementRow
		var expires sql.NullTime
		if err := rows.Scan(&row.UserID, &row.Username, &row.StartsAt, &expires); err != nil {
			return nil, err
		}
		if expires.Valid {
			t := expires.Time
			row.ExpiresAt = &t
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
