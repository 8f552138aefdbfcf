// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"errors"
	"testing"

	"bookstore/model"
	"bookstore/util/hash"

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

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, errors.New("no rows")
	}
	return m.byEmailFn(ctx, email)
}
func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	return m.listFn(ctx, limit, offset)
}
func (m *mockRepo) Update(ctx context.Context, u *model.User) error { return m.updateFn(ctx, u) }
func (m *mockRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Username: "halim",
		Email:    "USER@Example.COM",
		Password: "supersecret",
		Roles:    []string{"author"},
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, "halim", u.Username)
	require.True(t, u.Roles.Has(model.RoleAuthor))
	require.NotEmpty(t, u.PasswordHash)
}

func TestRegister_DefaultRoleIsReader(t *testing.T) {
	m := &mockRepo{createFn: func(ctx context.Context, u *model.User) error { return nil }}
	svc := New(m, "test-secret")

	u, _, err := svc.Register(context.Background(), model.RegisterReq{
		Username: "plain",
		Email:    "plain@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, model.DefaultRoles(), u.Roles)
}

func TestRegister_AdminNotSelfAssignable(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Username: "sneaky",
		Email:    "sneaky@example.com",
		Password: "supersecret",
		Roles:    []string{"admin"},
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Username: "ok",
		Email:    "ok@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
	require.NotErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Email:        "user@example.com",
				Username:     "halim",
				PasswordHash: hashed,
				Roles:        model.DefaultRoles(),
			}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_UserNotFound(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           101,
				Email:        "user@example.com",
				Username:     "halim",
				PasswordHash: hashed,
				Roles:        model.DefaultRoles(),
			}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCreds)
}
