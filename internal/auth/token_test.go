package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, accessTTL, refreshTTL time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec("access-secret", "refresh-secret", accessTTL, refreshTTL)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RejectsSharedSecret(t *testing.T) {
	_, err := NewCodec("same", "same", time.Hour, time.Hour)
	require.Error(t, err)
}

func TestNewCodec_RejectsEmptySecret(t *testing.T) {
	_, err := NewCodec("", "refresh", time.Hour, time.Hour)
	require.Error(t, err)
}

func TestCodec_MintVerify_RoundTrip(t *testing.T) {
	c := newTestCodec(t, time.Hour, 7*24*time.Hour)

	for _, isAdmin := range []bool{true, false} {
		for _, kind := range []TokenKind{KindAccess, KindRefresh} {
			tok, err := c.Mint(isAdmin, kind)
			require.NoError(t, err)

			claims, err := c.Verify(tok, kind)
			require.NoError(t, err)
			assert.Equal(t, isAdmin, claims.IsAdmin)
		}
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := newTestCodec(t, -time.Second, 7*24*time.Hour)

	tok, err := c.Mint(true, KindAccess)
	require.NoError(t, err)

	_, err = c.Verify(tok, KindAccess)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_Verify_KindsUseDistinctSecrets(t *testing.T) {
	c := newTestCodec(t, time.Hour, time.Hour)

	access, err := c.Mint(false, KindAccess)
	require.NoError(t, err)
	refresh, err := c.Mint(false, KindRefresh)
	require.NoError(t, err)

	_, err = c.Verify(access, KindRefresh)
	require.ErrorIs(t, err, ErrTokenInvalid)
	_, err = c.Verify(refresh, KindAccess)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c := newTestCodec(t, time.Hour, time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		_, err := c.Verify(tok, KindAccess)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestCodec_Mint_DistinctValues(t *testing.T) {
	c := newTestCodec(t, time.Hour, time.Hour)

	// Token values are primary keys in the session store; two refresh tokens
	// minted back-to-back with identical claims must still differ.
	a, err := c.Mint(true, KindRefresh)
	require.NoError(t, err)
	b, err := c.Mint(true, KindRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
