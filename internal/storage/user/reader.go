package user

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, psql.Quote("id").EQ(psql.Arg(id)))
}

func (r *Reader) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, psql.Quote("username").EQ(psql.Arg(username)))
}

func (r *Reader) findOne(ctx context.Context, where bob.Expression) (*User, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.UsersTable),
		sm.Where(where),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[userRow]())
	if sqlconfig.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToUser(row), nil
}
