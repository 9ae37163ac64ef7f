package auth

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/apperror"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssuePair_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	userID := uuid.Must(uuid.NewV4())

	pair, err := issuer.IssuePair(userID)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	fromAccess, err := issuer.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, fromAccess)

	fromRefresh, err := issuer.ParseRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, fromRefresh)
}

func TestParse_WrongTokenType(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	pair, err := issuer.IssuePair(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.Refresh)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	assert.Contains(t, err.Error(), "invalid")

	_, err = issuer.ParseRefresh(pair.Access)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestParse_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 2*time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	pair, err := issuer.IssuePair(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.ParseRefresh(pair.Refresh)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	assert.Contains(t, err.Error(), "expired")
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	other := NewTokenIssuer("another-secret-another-secret-xx", time.Hour, 24*time.Hour)

	pair, err := other.IssuePair(uuid.Must(uuid.NewV4()))
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.Access)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
	assert.Contains(t, err.Error(), "invalid")
}

func TestParse_Garbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	_, err := issuer.ParseAccess("not-a-token")
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour, 24*time.Hour)
	claims := Claims{
		TokenType: TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.Must(uuid.NewV4()).String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.ParseAccess(unsigned)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}
