package commentrepo

import (
	"context"
	"database/sql"

	"bookstore/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
	ByID(ctx context.Context, id int64) (*model.CommentRow, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, limit, offset int) ([]model.CommentRow, error)
	UpdateDescription(ctx context.Context, id int64, description string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, c *model.Comment) error {
	const q = `
		INSERT INTO comments (description, author_id, book_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, c.Description, c.AuthorID, c.BookID).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.CommentRow, error) {
	const q = `
		SELECT c.id, c.description, c.author_id, u.username, c.book_id, b.title, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		JOIN books b ON b.id = c.book_id
		WHERE c.id = $1`
	var row model.CommentRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.Description, &row.AuthorID, &row.AuthorUsername,
		&row.BookID, &row.BookTitle, &row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// OwnerOf returns the comment's author id without the joins.
func (r *repo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT author_id FROM comments WHERE id = $1`, id,
	).Scan(&authorID)
	return authorID, err
}

func (r *repo) List(ctx context.Context, limit, offset int) ([]model.CommentRow, error) {
	const q = `
		SELECT c.id, c.description, c.author_id, u.username, c.book_id, b.title, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		JOIN books b ON b.id = c.book_id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CommentRow
	for rows.Next() {
		var row model.CommentRow
		if err := rows.Scan(
			&row.ID, &row.Description, &row.AuthorID, &row.AuthorUsername,
			&row.BookID, &row.BookTitle, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) UpdateDescription(ctx context.Context, id int64, description string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET description = $2 WHERE id = $1`, id, description)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
