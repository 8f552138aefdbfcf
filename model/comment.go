package model

import "time"

type Comment struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	AuthorID    int64     `json:"author_id"`
	BookID      int64     `json:"book_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentRow expands the author and book references for display.
type CommentRow struct {
	ID             int64     `json:"id"`
	Description    string    `json:"description"`
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author"`
	BookID         int64     `json:"book_id"`
	BookTitle      string    `json:"book_title"`
	CreatedAt      time.Time `json:"created_at"`
}
