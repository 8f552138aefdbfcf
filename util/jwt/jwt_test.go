package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueParseRoundTrip(t *testing.T) {
	token, err := Issue(secret, 42, []string{"author", "reader"}, 24)
	require.NoError(t, err)

	mc, err := ParseAuth("Bearer "+token, secret)
	require.NoError(t, err)

	require.EqualValues(t, 42, mc["sub"].(float64))
	roles := mc["roles"].([]interface{})
	require.Len(t, roles, 2)
	require.Equal(t, "author", roles[0])
	require.Equal(t, "reader", roles[1])
}

func TestParseAuthBareToken(t *testing.T) {
	token, err := Issue(secret, 7, []string{"reader"}, 1)
	require.NoError(t, err)

	mc, err := ParseAuth(token, secret)
	require.NoError(t, err)
	require.EqualValues(t, 7, mc["sub"].(float64))
}

func TestParseAuthWrongSecret(t *testing.T) {
	token, err := Issue(secret, 7, []string{"reader"}, 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+token, "other-secret")
	require.Error(t, err)
}

func TestParseAuthExpired(t *testing.T) {
	token, err := Issue(secret, 7, []string{"reader"}, -1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+token, secret)
	require.Error(t, err)
}

func TestParseAuthMissingToken(t *testing.T) {
	_, err := ParseAuth("", secret)
	require.Error(t, err)

	_, err = ParseAuth("Bearer   ", secret)
	require.Error(t, err)
}
