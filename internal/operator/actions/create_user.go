package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// CreateUser registers a user. PasswordHash must already be hashed.
type CreateUser struct {
	Username     string
	Email        string
	PasswordHash string

	Created *user.User
}

func (c *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	taken, err := writer.Users.UsernameExists(ctx, c.Username)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Validation("a user with that username already exists")
	}

	taken, err = writer.Users.EmailExists(ctx, c.Email)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Validation("a user with that email already exists")
	}

	created, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
	})
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperror.Validation("a user with that username or email already exists")
	}
	if err != nil {
		return err
	}

	c.Created = created
	return nil
}
