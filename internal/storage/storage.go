package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/config"
)

type Storage struct {
	DB    bob.DB
	sqlDB *sql.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	return &Storage{
		DB:    bob.NewDB(db),
		sqlDB: db,
	}
}

// Write begins a database transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin write transaction: %w", err)
	}
	writer := NewWriter(tx)
	return &writer, nil
}

// Read runs fn inside a read-only, repeatable-read transaction so that every
// query fn issues sees the same snapshot.
func (s *Storage) Read(ctx context.Context, fn func(reader *Reader) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}

	if err := fn(NewReader(tx)); err != nil {
		_ = tx.Rollback(context.Background())
		return err
	}
	return tx.Commit(context.Background())
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}
