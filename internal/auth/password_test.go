package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	for _, pw := range []string{"GoodPass123!", "x", "пароль-Ünïcode-42!"} {
		digest, err := h.Hash(pw)
		require.NoError(t, err)

		ok, err := h.Verify(pw, digest)
		require.NoError(t, err)
		require.True(t, ok, "password %q must verify against its own digest", pw)

		ok, err = h.Verify(pw+"?", digest)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	a, err := h.Hash("GoodPass123!")
	require.NoError(t, err)
	b, err := h.Hash("GoodPass123!")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	h := NewHasher(0)
	digest, err := h.Hash("GoodPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	require.Equal(t, DefaultCost, cost)
}

func TestHasher_Errors(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrHashing)

	ok, err := h.Verify("GoodPass123!", "not-a-bcrypt-digest")
	require.False(t, ok)
	require.ErrorIs(t, err, ErrHashing)
}
