package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/carson-networks/finance-server/internal/apperror"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string
	Refresh string
}

// TokenIssuer signs and verifies HS256 tokens. Tokens are not persisted and
// cannot be revoked before they expire.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *TokenIssuer) IssuePair(userID uuid.UUID) (*TokenPair, error) {
	access, err := i.issue(userID, TokenAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := i.issue(userID, TokenRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *TokenIssuer) IssueAccess(userID uuid.UUID) (string, error) {
	return i.issue(userID, TokenAccess, i.accessTTL)
}

// ParseAccess returns the user id carried by a valid access token.
func (i *TokenIssuer) ParseAccess(token string) (uuid.UUID, error) {
	return i.parse(token, TokenAccess)
}

// ParseRefresh returns the user id carried by a valid refresh token.
func (i *TokenIssuer) ParseRefresh(token string) (uuid.UUID, error) {
	return i.parse(token, TokenRefresh)
}

func (i *TokenIssuer) issue(userID uuid.UUID, tokenType TokenType, ttl time.Duration) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}

	now := i.now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (i *TokenIssuer) parse(token string, want TokenType) (uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return uuid.Nil, apperror.Auth("token is expired")
	}
	if err != nil || claims.TokenType != want {
		return uuid.Nil, apperror.Auth("token is invalid")
	}

	userID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, apperror.Auth("token is invalid")
	}
	return userID, nil
}
