package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"go.uber.org/zap"
)

// Backend names.
const (
	BackendFile     = "file"
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Store persists observations and returns them as tables for the parser.
// Windows are inclusive calendar days; an empty owner means every owner.
type Store interface {
	Append(ctx context.Context, o mood.Observation) error
	FetchAll(ctx context.Context, owner string) (parser.Table, error)
	FetchWindow(ctx context.Context, start, end time.Time, owner string) (parser.Table, error)
}

// Config carries the settings every backend may need.
type Config struct {
	DataFile    string
	SupabaseURL string
	SupabaseKey string
	DatabaseURL string
	HTTPTimeout time.Duration
	Logger      *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Factory builds a Store from Config.
type Factory func(Config) (Store, error)

var registry = map[string]Factory{}

// Register registers a backend name with its factory.
func Register(name string, f Factory) { registry[name] = f }

// Names lists registered backends in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Open builds the named backend.
func Open(name string, c Config) (Store, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown store %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f(c)
}

// UnavailableError reports a failed store operation. It matches
// mood.ErrStoreUnavailable under errors.Is.
type UnavailableError struct {
	Backend string
	Op      string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e == nil {
		return "store unavailable"
	}
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == mood.ErrStoreUnavailable }

func unavailable(backend, op string, err error) error {
	return &UnavailableError{Backend: backend, Op: op, Err: err}
}

func init() {
	Register(BackendFile, func(c Config) (Store, error) {
		if c.DataFile == "" {
			return nil, fmt.Errorf("file store: data_file is not set")
		}
		return NewFileStore(c.DataFile, c.logger()), nil
	})
	Register(BackendSupabase, func(c Config) (Store, error) {
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return nil, fmt.Errorf("supabase store: supabase_url and supabase_key are required")
		}
		if c.HTTPTimeout <= 0 {
			c.HTTPTimeout = 30 * time.Second
		}
		return NewSupabaseStore(c.SupabaseURL, c.SupabaseKey, c.HTTPTimeout, c.logger()), nil
	})
	Register(BackendPostgres, func(c Config) (Store, error) {
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres store: database_url is not set")
		}
		return OpenPostgres(c.DatabaseURL, c.logger())
	})
}
