package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a registered account holder.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// UserCreate is the input for registering a user. PasswordHash must already be hashed.
type UserCreate struct {
	Username     string
	Email        string
	PasswordHash string
}

// IReader defines the read operations on the users table.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// IWriter defines the transactional operations on the users table.
type IWriter interface {
	IReader
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

var columns = []any{"id", "username", "email", "password_hash", "is_active", "created_at"}

func rowToUser(row userRow) *User {
	return &User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
	}
}
