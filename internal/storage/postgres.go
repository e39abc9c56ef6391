package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUnexpectedDatabase = errors.New("unexpected database error")

// WordStore reads the word catalogue. Game state is never written here.
type WordStore struct {
	pool *pgxpool.Pool
}

func NewWordStore(ctx context.Context, connString string) (*WordStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
	return &WordStore{pool: pool}, nil
}

const schema = `CREATE TABLE IF NOT EXISTS words (
	word TEXT PRIMARY KEY CHECK (length(trim(word)) > 0)
)`

func (s *WordStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
	return nil
}

// Words returns the catalogue in a stable order.
func (s *WordStore) Words(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "SELECT word FROM words ORDER BY word")
	if err != nil {
		return nil, s.wrap(err)
	}

	words, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, s.wrap(err)
	}
	return words, nil
}

func (s *WordStore) Close() {
	s.pool.Close()
}

func (s *WordStore) wrap(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
}
