package bookrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, limit, offset int) ([]model.BookListRow, error)
	Detail(ctx context.Context, id int64) (*model.BookDetailRow, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, description, published_date, price, rental_price,
                   available_for_purchase, available_for_rental, author_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Description, b.PublishedDate, b.Price, b.RentalPrice,
		b.AvailableForPurchase, b.AvailableForRental, b.AuthorID,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT id, title, description, published_date, price, rental_price,
       available_for_purchase, available_for_rental, author_id, created_at
FROM books
WHERE id = $1`
	b := &model.Book{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Description, &b.PublishedDate, &b.Price, &b.RentalPrice,
		&b.AvailableForPurchase, &b.AvailableForRental, &b.AuthorID, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) List(ctx context.Context, limit, offset int) ([]model.BookListRow, error) {
	const q = `
	SELECT b.id, b.title, b.price, b.rental_price, u.username
	FROM books b
	JOIN users u ON u.id = b.author_id
	ORDER BY b.id DESC
	LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookListRow
	for rows.Next() {
		var b model.BookListRow
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.RentalPrice, &b.AuthorUsername); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.BookDetailRow, error) {
	const q = `
SELECT b.id, b.title, b.price, u.username
FROM books b
JOIN users u ON u.id = b.author_id
WHERE b.id = $1`
	var b model.BookDetailRow
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Title, &b.Price, &b.AuthorUsername); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update replaces every field except author_id: authorship is immutable.
func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
		UPDATE books
		SET title = $2,
		    description = $3,
		    published_date = $4,
		    price = $5,
		    rental_price = $6,
		    available_for_purchase = $7,
		    available_for_rental = $8
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Description, b.PublishedDate, b.Price, b.RentalPrice,
		b.AvailableForPurchase, b.AvailableForRental,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
