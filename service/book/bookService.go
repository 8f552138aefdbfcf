package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookstore/model"
	accesssvc "bookstore/service/access"
)

var (
	ErrNotFound  = errors.New("book not found")
	ErrForbidden = errors.New("forbidden")
	ErrBadInput  = errors.New("invalid payload")
)

// Input carries every caller-editable book field. The author is stamped from
// the session on create and never replaced on update.
type Input struct {
	Title                string
	Description          string
	PublishedDate        time.Time
	Price                float64
	RentalPrice          float64
	AvailableForPurchase bool
	AvailableForRental   bool
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, limit, offset int) ([]model.BookListRow, error)
	Detail(ctx context.Context, id int64) (*model.BookDetailRow, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type EntitlementRepo interface {
	ListForBook(ctx context.Context, bookID int64, kind model.EntitlementKind) ([]model.EntitlementRow, error)
}

type Service interface {
	Create(ctx context.Context, actorID int64, roles model.RoleList, in Input) (*model.Book, error)
	List(ctx context.Context, limit, offset int) ([]model.BookListRow, error)
	Detail(ctx context.Context, id int64) (*model.BookDetailRow, error)
	Update(ctx context.Context, actorID int64, roles model.RoleList, id int64, in Input) (*model.Book, error)
	Delete(ctx context.Context, actorID int64, roles model.RoleList, id int64) error

	// Content gates the protected payload behind the full three-way
	// entitlement decision and expands entitlement rows to usernames.
	Content(ctx context.Context, actorID int64, roles model.RoleList, id int64) (*model.BookContent, error)
}

type service struct {
	r      Repo
	er     EntitlementRepo
	access accesssvc.Service
	now    func() time.Time
}

func New(r Repo, er EntitlementRepo, access accesssvc.Service) Service {
	return &service{r: r, er: er, access: access, now: time.Now}
}

func (s *service) Create(ctx context.Context, actorID int64, roles model.RoleList, in Input) (*model.Book, error) {
	if !roles.Has(model.RoleAuthor) && !roles.IsAdmin() {
		return nil, ErrForbidden
	}
	if in.Title == "" || in.Price < 0 || in.RentalPrice < 0 {
		return nil, ErrBadInput
	}
	b := &model.Book{
		Title:                in.Title,
		Description:          in.Description,
		PublishedDate:        in.PublishedDate,
		Price:                in.Price,
		RentalPrice:          in.RentalPrice,
		AvailableForPurchase: in.AvailableForPurchase,
		AvailableForRental:   in.AvailableForRental,
		AuthorID:             actorID,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]model.BookListRow, error) {
	return s.r.List(ctx, limit, offset)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.BookDetailRow, error) {
	row, err := s.r.Detail(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

func (s *service) Update(ctx context.Context, actorID int64, roles model.RoleList, id int64, in Input) (*model.Book, error) {
	b, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !accesssvc.CanMutate(roles, actorID, b.AuthorID) {
		return nil, ErrForbidden
	}
	if in.Title == "" || in.Price < 0 || in.RentalPrice < 0 {
		return nil, ErrBadInput
	}

	b.Title = in.Title
	b.Description = in.Description
	b.PublishedDate = in.PublishedDate
	b.Price = in.Price
	b.RentalPrice = in.RentalPrice
	b.AvailableForPurchase = in.AvailableForPurchase
	b.AvailableForRental = in.AvailableForRental
	// AuthorID untouched

	if err := s.r.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, actorID int64, roles model.RoleList, id int64) error {
	b, err := s.byID(ctx, id)
	if err != nil {
		return err
	}
	if !accesssvc.CanMutate(roles, actorID, b.AuthorID) {
		return ErrForbidden
	}
	_, err = s.r.Delete(ctx, id)
	return err
}

func (s *service) Content(ctx context.Context, actorID int64, roles model.RoleList, id int64) (*model.BookContent, error) {
	b, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.ContentAccess(ctx, roles, actorID, id, s.now()); err != nil {
		return nil, err
	}

	purchasers, err := s.er.ListForBook(ctx, id, model.KindPurchase)
	if err != nil {
		return nil, err
	}
	renters, err := s.er.ListForBook(ctx, id, model.KindRental)
	if err != nil {
		return nil, err
	}
	return &model.BookContent{Book: *b, Purchasers: purchasers, Renters: renters}, nil
}

func (s *service) byID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
