package commentsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"bookstore/model"
	commentsvc "bookstore/service/comment"
)

type repoMock struct {
	createFn  func(ctx context.Context, c *model.Comment) error
	byIDFn    func(ctx context.Context, id int64) (*model.CommentRow, error)
	ownerOfFn func(ctx context.Context, id int64) (int64, error)
	listFn    func(ctx context.Context, limit, offset int) ([]model.CommentRow, error)
	updateFn  func(ctx context.Context, id int64, description string) error
	deleteFn  func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, c *model.Comment) error { return m.createFn(ctx, c) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.CommentRow, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) OwnerOf(ctx context.Context, id int64) (int64, error) {
	return m.ownerOfFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context, limit, offset int) ([]model.CommentRow, error) {
	return m.listFn(ctx, limit, offset)
}
func (m *repoMock) UpdateDescription(ctx context.Context, id int64, description string) error {
	return m.updateFn(ctx, id, description)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(ctx, id) }

var (
	reader = model.RoleList{model.RoleReader}
	admin  = model.RoleList{model.RoleAdmin}
)

func TestCreate_StampsAuthorAndBook(t *testing.T) {
	var got *model.Comment
	m := &repoMock{createFn: func(ctx context.Context, c *model.Comment) error {
		c.ID = 1
		got = c
		return nil
	}}
	s := commentsvc.New(m)

	_, err := s.Create(context.Background(), 7, 3, "great read")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.AuthorID != 7 || got.BookID != 3 {
		t.Fatalf("got author=%d book=%d; want 7 3", got.AuthorID, got.BookID)
	}
}

func TestCreate_EmptyDescription(t *testing.T) {
	s := commentsvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), 7, 3, ""); !errors.Is(err, commentsvc.ErrBadInput) {
		t.Fatalf("got %v; want ErrBadInput", err)
	}
}

func TestUpdate_StrangerForbidden(t *testing.T) {
	m := &repoMock{
		ownerOfFn: func(ctx context.Context, id int64) (int64, error) { return 42, nil },
		updateFn: func(ctx context.Context, id int64, description string) error {
			t.Fatal("update must not run")
			return nil
		},
	}
	s := commentsvc.New(m)

	_, err := s.Update(context.Background(), 7, reader, 1, "edited")
	if !errors.Is(err, commentsvc.ErrForbidden) {
		t.Fatalf("got %v; want ErrForbidden", err)
	}
}

func TestUpdate_AdminOverride(t *testing.T) {
	updated := false
	m := &repoMock{
		ownerOfFn: func(ctx context.Context, id int64) (int64, error) { return 42, nil },
		updateFn:  func(ctx context.Context, id int64, description string) error { updated = true; return nil },
		byIDFn: func(ctx context.Context, id int64) (*model.CommentRow, error) {
			return &model.CommentRow{ID: id, Description: "edited"}, nil
		},
	}
	s := commentsvc.New(m)

	row, err := s.Update(context.Background(), 7, admin, 1, "edited")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated || row.Description != "edited" {
		t.Fatalf("admin update did not apply: %+v", row)
	}
}

func TestDelete_OwnerAllowed(t *testing.T) {
	deleted := false
	m := &repoMock{
		ownerOfFn: func(ctx context.Context, id int64) (int64, error) { return 7, nil },
		deleteFn:  func(ctx context.Context, id int64) (bool, error) { deleted = true; return true, nil },
	}
	s := commentsvc.New(m)

	if err := s.Delete(context.Background(), 7, reader, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("repo delete not called")
	}
}

func TestDelete_Missing(t *testing.T) {
	m := &repoMock{
		ownerOfFn: func(ctx context.Context, id int64) (int64, error) { return 0, sql.ErrNoRows },
	}
	s := commentsvc.New(m)

	if err := s.Delete(context.Background(), 7, admin, 99); !errors.Is(err, commentsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
