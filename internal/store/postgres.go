package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const createMoods = `CREATE TABLE IF NOT EXISTS moods (
	id uuid PRIMARY KEY,
	mood text NOT NULL,
	score integer NOT NULL,
	"timestamp" timestamptz NOT NULL,
	user_id text NOT NULL DEFAULT ''
)`

const selectMoods = `SELECT mood, score, "timestamp", user_id FROM moods WHERE ($1 = '' OR user_id = $1)`

var postgresHeader = []string{"mood", "score", "timestamp", "user_id"}

// PostgresStore keeps observations in a moods table. timestamptz does not
// keep the written offset, so calendar days follow the session time zone.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
	ready  bool
}

// OpenPostgres connects through the pgx stdlib driver.
func OpenPostgres(dsn string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgresStore(db, logger), nil
}

// NewPostgresStore wraps an open handle.
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{db: db, logger: logger}
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s.ready {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, createMoods); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, o mood.Observation) error {
	if err := s.ensureSchema(ctx); err != nil {
		return unavailable(BackendPostgres, "append", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moods (id, mood, score, "timestamp", user_id) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), o.Mood, o.Score, o.At, o.Owner,
	)
	if err != nil {
		s.logger.Error("postgres insert failed", zap.Error(err))
		return unavailable(BackendPostgres, "append", err)
	}
	return nil
}

func (s *PostgresStore) FetchAll(ctx context.Context, owner string) (parser.Table, error) {
	return s.query(ctx, selectMoods+` ORDER BY "timestamp" ASC`, owner)
}

// FetchWindow pads the instant range by a day on each side, like the REST backend.
func (s *PostgresStore) FetchWindow(ctx context.Context, start, end time.Time, owner string) (parser.Table, error) {
	return s.query(ctx, selectMoods+` AND "timestamp" >= $2 AND "timestamp" < $3 ORDER BY "timestamp" ASC`,
		owner, start.AddDate(0, 0, -1), end.AddDate(0, 0, 2))
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) (parser.Table, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return parser.Table{}, unavailable(BackendPostgres, "fetch", err)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.logger.Error("postgres select failed", zap.Error(err))
		return parser.Table{}, unavailable(BackendPostgres, "fetch", err)
	}
	defer rows.Close()

	tbl := parser.Table{Header: postgresHeader}
	for rows.Next() {
		var (
			label, owner string
			score        int
			at           time.Time
		)
		if err := rows.Scan(&label, &score, &at, &owner); err != nil {
			return parser.Table{}, unavailable(BackendPostgres, "scan", err)
		}
		tbl.Rows = append(tbl.Rows, []string{label, strconv.Itoa(score), at.Format(time.RFC3339Nano), owner})
	}
	if err := rows.Err(); err != nil {
		return parser.Table{}, unavailable(BackendPostgres, "fetch", err)
	}
	s.logger.Debug("postgres rows fetched", zap.String("backend", BackendPostgres), zap.Int("rows", len(tbl.Rows)))
	return tbl, nil
}
