package usersvc

import (
	"context"
	"database/sql"
	"testing"

	"bookstore/model"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.User) error
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	listFn    func(ctx context.Context, limit, offset int) ([]model.User, error)
	updateFn  func(ctx context.Context, u *model.User) error
	deleteFn  func(ctx context.Context, id int64) (bool, error)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.byEmailFn(ctx, email)
}
func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	return m.listFn(ctx, limit, offset)
}
func (m *mockRepo) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *mockRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

func storedUser() *model.User {
	return &model.User{
		ID:       7,
		Username: "halim",
		Email:    "user@example.com",
		Roles:    model.DefaultRoles(),
	}
}

func TestUpdate_SelfAllowed(t *testing.T) {
	var saved *model.User
	m := &mockRepo{
		byIDFn:   func(ctx context.Context, id int64) (*model.User, error) { return storedUser(), nil },
		updateFn: func(ctx context.Context, u *model.User) error { saved = u; return nil },
	}
	s := New(m)

	u, err := s.Update(context.Background(), 7, model.DefaultRoles(), 7, model.UpdateUserReq{Username: "renamed"})
	require.NoError(t, err)
	require.Equal(t, "renamed", u.Username)
	require.Equal(t, "user@example.com", saved.Email)
}

func TestUpdate_StrangerForbidden(t *testing.T) {
	s := New(&mockRepo{})
	_, err := s.Update(context.Background(), 8, model.DefaultRoles(), 7, model.UpdateUserReq{Username: "x"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdate_RoleChangeRequiresAdmin(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return storedUser(), nil },
		updateFn: func(ctx context.Context, u *model.User) error {
			t.Fatal("update must not run")
			return nil
		},
	}
	s := New(m)

	_, err := s.Update(context.Background(), 7, model.DefaultRoles(), 7, model.UpdateUserReq{Roles: []string{"author"}})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdate_AdminGrantsRole(t *testing.T) {
	var saved *model.User
	m := &mockRepo{
		byIDFn:   func(ctx context.Context, id int64) (*model.User, error) { return storedUser(), nil },
		updateFn: func(ctx context.Context, u *model.User) error { saved = u; return nil },
	}
	s := New(m)

	_, err := s.Update(context.Background(), 1, model.RoleList{model.RoleAdmin}, 7, model.UpdateUserReq{Roles: []string{"author", "reader"}})
	require.NoError(t, err)
	require.True(t, saved.Roles.Has(model.RoleAuthor))
	require.True(t, saved.Roles.Has(model.RoleReader))
}

func TestGet_Missing(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	s := New(m)

	_, err := s.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_SelfAllowed(t *testing.T) {
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
	}
	s := New(m)
	require.NoError(t, s.Delete(context.Background(), 7, model.DefaultRoles(), 7))
}

func TestDelete_StrangerForbidden(t *testing.T) {
	s := New(&mockRepo{})
	require.ErrorIs(t, s.Delete(context.Background(), 8, model.DefaultRoles(), 7), ErrForbidden)
}
