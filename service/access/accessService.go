package accesssvc

import (
	"context"
	"errors"
	"time"

	"bookstore/model"
)

// RentalDuration is the fixed entitlement window stamped at finalization.
// Rentals do not renew or extend.
const RentalDuration = 7 * 24 * time.Hour

// errors used by controllers

type ErrCode string

const (
	ErrAccessDenied  ErrCode = "ACCESS_DENIED"
	ErrRentalExpired ErrCode = "RENTAL_EXPIRED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Decide is the content-access decision: admin wins unconditionally, then a
// purchase, then a rental that has not passed its end timestamp. The end
// bound is inclusive: access at exactly ExpiresAt is still granted.
func Decide(roles model.RoleList, purchased bool, rental *model.Entitlement, now time.Time) error {
	if roles.IsAdmin() {
		return nil
	}
	if purchased {
		return nil
	}
	if rental != nil {
		if rental.ExpiresAt == nil || !now.After(*rental.ExpiresAt) {
			return nil
		}
		return makeErr(ErrRentalExpired)
	}
	return makeErr(ErrAccessDenied)
}

// CanMutate is the two-way ownership gate used for book and comment
// update/delete: admin or original author, never purchasers or renters.
func CanMutate(roles model.RoleList, actorID, ownerID int64) bool {
	return roles.IsAdmin() || actorID == ownerID
}

type Repo interface {
	Find(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error)
	HasAny(ctx context.Context, bookID, userID int64) (bool, error)
}

type Service interface {
	// ContentAccess resolves the user's entitlement rows and runs Decide.
	ContentAccess(ctx context.Context, roles model.RoleList, userID, bookID int64, now time.Time) error

	// CommentAccess admits admins and anyone holding an entitlement row on
	// the book. Expiry is not checked here.
	CommentAccess(ctx context.Context, roles model.RoleList, userID, bookID int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) ContentAccess(ctx context.Context, roles model.RoleList, userID, bookID int64, now time.Time) error {
	if roles.IsAdmin() {
		return nil
	}
	purchase, err := s.r.Find(ctx, bookID, userID, model.KindPurchase)
	if err != nil {
		return err
	}
	rental, err := s.r.Find(ctx, bookID, userID, model.KindRental)
	if err != nil {
		return err
	}
	return Decide(roles, purchase != nil, rental, now)
}

func (s *service) CommentAccess(ctx context.Context, roles model.RoleList, userID, bookID int64) error {
	if roles.IsAdmin() {
		return nil
	}
	ok, err := s.r.HasAny(ctx, bookID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrAccessDenied)
	}
	return nil
}
