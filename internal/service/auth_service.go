package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

const maxUsernameLength = 150

// unknownUserPassword is hashed once and compared against when a login names
// no user, so both failure paths spend one bcrypt comparison.
const unknownUserPassword = "unknown-user-placeholder"

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type tokenIssuer interface {
	IssuePair(userID uuid.UUID) (*auth.TokenPair, error)
	IssueAccess(userID uuid.UUID) (string, error)
	ParseRefresh(token string) (uuid.UUID, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// AuthService owns registration, credential checks and token issuance.
type AuthService struct {
	storage  readerSource
	operator actionProcessor
	tokens   tokenIssuer
	hasher   passwordHasher

	dummyOnce sync.Once
	dummy     string
}

func NewAuthService(store readerSource, operator actionProcessor, tokens tokenIssuer, hasher passwordHasher) *AuthService {
	return &AuthService{
		storage:  store,
		operator: operator,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Register validates the new account, hashes the password and stores the user.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password, username, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return userFromStorage(action.Created), nil
}

// Login checks credentials and issues a token pair. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var found *user.User
	err := s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		found, err = reader.Users.FindByUsername(ctx, strings.TrimSpace(username))
		return err
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		s.hasher.Matches(s.dummyHash(), password)
		return nil, apperror.Auth("invalid credentials")
	}
	if !s.hasher.Matches(found.PasswordHash, password) {
		return nil, apperror.Auth("invalid credentials")
	}
	if !found.IsActive {
		return nil, apperror.New(apperror.KindInactive, "this account is inactive")
	}

	pair, err := s.tokens.IssuePair(found.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         userFromStorage(found),
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	}, nil
}

// dummyHash hashes unknownUserPassword with the configured cost on first use.
// A hashing failure leaves it empty, which still fails every comparison.
func (s *AuthService) dummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummy, _ = s.hasher.Hash(unknownUserPassword)
	})
	return s.dummy
}

// Refresh exchanges a refresh token for a new access token. The token's user
// must still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	var found *user.User
	err = s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		found, err = reader.Users.FindByID(ctx, userID)
		return err
	})
	if err != nil {
		return "", err
	}
	if found == nil || !found.IsActive {
		return "", apperror.Auth("token is invalid")
	}

	return s.tokens.IssueAccess(found.ID)
}

func validateUsername(username string) error {
	if username == "" {
		return apperror.Validation("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return apperror.Validation("username must be at most %d characters", maxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return apperror.Validation("username may contain only letters, digits and @/./+/-/_")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.Validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperror.Validation("enter a valid email address")
	}
	return nil
}
