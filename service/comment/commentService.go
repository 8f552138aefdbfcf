package commentsvc

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/model"
	commentrepo "bookstore/repository/comment"
	accesssvc "bookstore/service/access"
)

var (
	ErrNotFound  = errors.New("comment not found")
	ErrForbidden = errors.New("forbidden")
	ErrBadInput  = errors.New("invalid payload")
)

type Service interface {
	Create(ctx context.Context, actorID, bookID int64, description string) (*model.Comment, error)
	Get(ctx context.Context, id int64) (*model.CommentRow, error)
	List(ctx context.Context, limit, offset int) ([]model.CommentRow, error)
	Update(ctx context.Context, actorID int64, roles model.RoleList, id int64, description string) (*model.CommentRow, error)
	Delete(ctx context.Context, actorID int64, roles model.RoleList, id int64) error
}

type service struct{ r commentrepo.Repo }

func New(r commentrepo.Repo) Service { return &service{r: r} }

// Create assumes the book-access middleware already ran; it only persists.
func (s *service) Create(ctx context.Context, actorID, bookID int64, description string) (*model.Comment, error) {
	if description == "" {
		return nil, ErrBadInput
	}
	c := &model.Comment{Description: description, AuthorID: actorID, BookID: bookID}
	if err := s.r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.CommentRow, error) {
	row, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

func (s *service) List(ctx context.Context, limit, offset int) ([]model.CommentRow, error) {
	return s.r.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, actorID int64, roles model.RoleList, id int64, description string) (*model.CommentRow, error) {
	if description == "" {
		return nil, ErrBadInput
	}
	if err := s.checkOwner(ctx, actorID, roles, id); err != nil {
		return nil, err
	}
	if err := s.r.UpdateDescription(ctx, id, description); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID int64, roles model.RoleList, id int64) error {
	if err := s.checkOwner(ctx, actorID, roles, id); err != nil {
		return err
	}
	_, err := s.r.Delete(ctx, id)
	return err
}

func (s *service) checkOwner(ctx context.Context, actorID int64, roles model.RoleList, id int64) error {
	ownerID, err := s.r.OwnerOf(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !accesssvc.CanMutate(roles, actorID, ownerID) {
		return ErrForbidden
	}
	return nil
}
