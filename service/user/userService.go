package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"bookstore/model"
	userrepo "bookstore/repository/user"
	"bookstore/util/hash"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrForbidden = errors.New("forbidden")
	ErrBadInput  = errors.New("bad input")
)

type Service interface {
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, actorID int64, actorRoles model.RoleList, id int64, req model.UpdateUserReq) (*model.User, error)
	Delete(ctx context.Context, actorID int64, actorRoles model.RoleList, id int64) error
}

type service struct{ r userrepo.Repo }

func New(r userrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	return s.r.List(ctx, limit, offset)
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// Update applies the allow-listed fields only. Role changes require the
// actor to be an admin; everything else is admin-or-self.
func (s *service) Update(ctx context.Context, actorID int64, actorRoles model.RoleList, id int64, req model.UpdateUserReq) (*model.User, error) {
	if !actorRoles.IsAdmin() && actorID != id {
		return nil, ErrForbidden
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		u.Username = strings.TrimSpace(req.Username)
	}
	if req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Password != "" {
		hashed, err := hash.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hashed
	}
	if len(req.Roles) > 0 {
		if !actorRoles.IsAdmin() {
			return nil, ErrForbidden
		}
		roles, err := model.ParseRoles(req.Roles)
		if err != nil {
			return nil, ErrBadInput
		}
		u.Roles = roles
	}

	if err := s.r.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, actorID int64, actorRoles model.RoleList, id int64) error {
	if !actorRoles.IsAdmin() && actorID != id {
		return ErrForbidden
	}
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
