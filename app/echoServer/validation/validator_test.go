package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAndFields(t *testing.T) {
	type req struct {
		Title string  `json:"title" validate:"required"`
		Price float64 `json:"price" validate:"gte=0"`
	}

	v := New()
	require.NoError(t, v.Validate(req{Title: "ok", Price: 1}))

	err := v.Validate(req{Title: "", Price: -1})
	require.Error(t, err)

	fields := Fields(err)
	require.Equal(t, "required", fields["title"])
	require.Equal(t, "gte 0", fields["price"])
}

func TestFieldsNonValidationError(t *testing.T) {
	require.Empty(t, Fields(errors.New("boom")))
}
