package user

import (
	"context"
	"strings"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) UsernameExists(ctx context.Context, username string) (bool, error) {
	return w.exists(ctx, psql.Quote("username").EQ(psql.Arg(username)))
}

// EmailExists compares case-insensitively, matching the users_email_lower_idx index.
func (w *Writer) EmailExists(ctx context.Context, email string) (bool, error) {
	return w.exists(ctx, psql.Raw("lower(email) = ?", strings.ToLower(email)))
}

func (w *Writer) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	query := psql.Insert(
		im.Into(sqlconfig.UsersTable, "username", "email", "password_hash"),
		im.Values(
			psql.Arg(create.Username),
			psql.Arg(create.Email),
			psql.Arg(create.PasswordHash),
		),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[userRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(err)
	}
	return rowToUser(row), nil
}

func (w *Writer) exists(ctx context.Context, where bob.Expression) (bool, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("1")),
		sm.From(sqlconfig.UsersTable),
		sm.Where(where),
		sm.Limit(1),
	)
	rows, err := bob.All(ctx, w.tx, query, scan.SingleColumnMapper[int])
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
