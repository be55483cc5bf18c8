package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"go.uber.org/zap"
)

// FileStore is the append-only flat file, one timestamp,mood,score line per
// observation. It holds a single user's data, so owner filters are ignored.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore returns a store backed by path. The file is created on first append.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Append(ctx context.Context, o mood.Observation) error {
	if err := ctx.Err(); err != nil {
		return unavailable(BackendFile, "append", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return unavailable(BackendFile, "append", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return unavailable(BackendFile, "append", err)
	}
	if _, err := f.WriteString(parser.EncodeLine(o) + "\n"); err != nil {
		_ = f.Close()
		return unavailable(BackendFile, "append", err)
	}
	if err := f.Close(); err != nil {
		return unavailable(BackendFile, "append", err)
	}
	s.logger.Debug("observation appended", zap.String("backend", BackendFile), zap.String("path", s.path))
	return nil
}

func (s *FileStore) FetchAll(ctx context.Context, _ string) (parser.Table, error) {
	if err := ctx.Err(); err != nil {
		return parser.Table{}, unavailable(BackendFile, "fetch", err)
	}
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return parser.Table{Header: parser.LocalHeader}, nil
	}
	if err != nil {
		return parser.Table{}, unavailable(BackendFile, "fetch", err)
	}
	defer f.Close()
	tbl, err := parser.ReadLocal(f)
	if err != nil {
		return parser.Table{}, unavailable(BackendFile, "fetch", err)
	}
	s.logger.Debug("file read", zap.String("backend", BackendFile), zap.Int("rows", len(tbl.Rows)))
	return tbl, nil
}

// FetchWindow reads the whole file and keeps rows whose calendar day lies in
// [start, end]. Rows with unreadable timestamps are dropped here.
func (s *FileStore) FetchWindow(ctx context.Context, start, end time.Time, owner string) (parser.Table, error) {
	tbl, err := s.FetchAll(ctx, owner)
	if err != nil {
		return tbl, err
	}
	kept := tbl.Rows[:0]
	for _, row := range tbl.Rows {
		at, err := parser.NormalizeTimestamp(row[0], nil)
		if err != nil {
			continue
		}
		if inDays(at, start, end) {
			kept = append(kept, row)
		}
	}
	tbl.Rows = kept
	return tbl, nil
}

func inDays(t, start, end time.Time) bool {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
