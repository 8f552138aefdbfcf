package accesssvc

import (
	"context"
	"testing"
	"time"

	"bookstore/model"

	"github.com/stretchr/testify/require"
)

func rentalEnding(end time.Time) *model.Entitlement {
	return &model.Entitlement{
		BookID:    1,
		UserID:    2,
		Kind:      model.KindRental,
		StartsAt:  end.Add(-RentalDuration),
		ExpiresAt: &end,
	}
}

func TestDecide_Admin(t *testing.T) {
	now := time.Now()
	expired := rentalEnding(now.Add(-time.Hour))

	// admin wins even over an expired rental
	err := Decide(model.RoleList{model.RoleAdmin}, false, expired, now)
	require.NoError(t, err)
}

func TestDecide_Purchaser(t *testing.T) {
	err := Decide(model.RoleList{model.RoleReader}, true, nil, time.Now())
	require.NoError(t, err)
}

func TestDecide_RentalWindow(t *testing.T) {
	end := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	roles := model.RoleList{model.RoleReader}

	cases := []struct {
		name string
		now  time.Time
		code ErrCode
	}{
		{"well inside", end.Add(-24 * time.Hour), ""},
		{"at the boundary", end, ""},
		{"one second past", end.Add(time.Second), ErrRentalExpired},
		{"long expired", end.Add(30 * 24 * time.Hour), ErrRentalExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Decide(roles, false, rentalEnding(end), tc.now)
			if tc.code == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tc.code, Code(err))
		})
	}
}

func TestDecide_NoEntitlement(t *testing.T) {
	err := Decide(model.RoleList{model.RoleReader, model.RoleAuthor}, false, nil, time.Now())
	require.Error(t, err)
	require.Equal(t, ErrAccessDenied, Code(err))
}

func TestCanMutate(t *testing.T) {
	admin := model.RoleList{model.RoleAdmin}
	reader := model.RoleList{model.RoleReader}

	require.True(t, CanMutate(admin, 10, 99))
	require.True(t, CanMutate(reader, 7, 7))
	require.False(t, CanMutate(reader, 7, 8))
}

type mockRepo struct {
	findFn   func(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error)
	hasAnyFn func(ctx context.Context, bookID, userID int64) (bool, error)
}

func (m *mockRepo) Find(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error) {
	return m.findFn(ctx, bookID, userID, kind)
}
func (m *mockRepo) HasAny(ctx context.Context, bookID, userID int64) (bool, error) {
	return m.hasAnyFn(ctx, bookID, userID)
}

func TestContentAccess_AdminSkipsLookups(t *testing.T) {
	s := New(&mockRepo{
		findFn: func(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error) {
			t.Fatal("repo should not be queried for admins")
			return nil, nil
		},
	})
	err := s.ContentAccess(context.Background(), model.RoleList{model.RoleAdmin}, 1, 1, time.Now())
	require.NoError(t, err)
}

func TestContentAccess_RentalRow(t *testing.T) {
	end := time.Now().Add(time.Hour)
	s := New(&mockRepo{
		findFn: func(ctx context.Context, bookID, userID int64, kind model.EntitlementKind) (*model.Entitlement, error) {
			if kind == model.KindRental {
				return rentalEnding(end), nil
			}
			return nil, nil
		},
	})
	err := s.ContentAccess(context.Background(), model.RoleList{model.RoleReader}, 2, 1, time.Now())
	require.NoError(t, err)

	err = s.ContentAccess(context.Background(), model.RoleList{model.RoleReader}, 2, 1, end.Add(time.Minute))
	require.Equal(t, ErrRentalExpired, Code(err))
}

func TestCommentAccess_NoExpiryCheck(t *testing.T) {
	// an expired renter may still comment
	s := New(&mockRepo{
		hasAnyFn: func(ctx context.Context, bookID, userID int64) (bool, error) { return true, nil },
	})
	err := s.CommentAccess(context.Background(), model.RoleList{model.RoleReader}, 2, 1)
	require.NoError(t, err)
}

func TestCommentAccess_Denied(t *testing.T) {
	s := New(&mockRepo{
		hasAnyFn: func(ctx context.Context, bookID, userID int64) (bool, error) { return false, nil },
	})
	err := s.CommentAccess(context.Background(), model.RoleList{model.RoleReader}, 2, 1)
	require.Equal(t, ErrAccessDenied, Code(err))
}
