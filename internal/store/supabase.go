package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	supabaseTable  = "/rest/v1/moods"
	supabaseSelect = "mood,score,timestamp,user_id"
)

// SupabaseStore talks to the PostgREST endpoint of a Supabase project.
// Reads ask for CSV so the remote rows go through the same parser as files.
type SupabaseStore struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

type supabaseRow struct {
	Mood      string `json:"mood"`
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
}

// NewSupabaseStore creates a client for baseURL authenticated with key.
// Requests are never retried; a failure is reported once.
func NewSupabaseStore(baseURL, key string, timeout time.Duration, logger *zap.Logger) *SupabaseStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("apikey", key).
		SetAuthToken(key)

	return &SupabaseStore{httpClient: client, logger: logger}
}

func (s *SupabaseStore) Append(ctx context.Context, o mood.Observation) error {
	body := supabaseRow{
		Mood:      o.Mood,
		Score:     o.Score,
		Timestamp: o.At.Format(time.RFC3339),
		UserID:    o.Owner,
	}
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(body).
		Post(supabaseTable)
	if err != nil {
		s.logger.Error("supabase insert failed", zap.Error(err))
		return unavailable(BackendSupabase, "append", err)
	}
	if resp.IsError() {
		s.logger.Error("supabase insert rejected",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return unavailable(BackendSupabase, "append", fmt.Errorf("status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String())))
	}
	return nil
}

func (s *SupabaseStore) FetchAll(ctx context.Context, owner string) (parser.Table, error) {
	return s.fetch(ctx, s.query(owner))
}

// FetchWindow pads the instant range by a day on each side; the remote side
// compares instants while callers bucket by the source's own calendar day.
func (s *SupabaseStore) FetchWindow(ctx context.Context, start, end time.Time, owner string) (parser.Table, error) {
	q := s.query(owner)
	q.Add("timestamp", "gte."+start.AddDate(0, 0, -1).Format(time.RFC3339))
	q.Add("timestamp", "lt."+end.AddDate(0, 0, 2).Format(time.RFC3339))
	return s.fetch(ctx, q)
}

func (s *SupabaseStore) query(owner string) url.Values {
	q := url.Values{}
	q.Set("select", supabaseSelect)
	q.Set("order", "timestamp.asc")
	if owner != "" {
		q.Set("user_id", "eq."+owner)
	}
	return q
}

func (s *SupabaseStore) fetch(ctx context.Context, q url.Values) (parser.Table, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		SetQueryParamsFromValues(q).
		Get(supabaseTable)
	if err != nil {
		s.logger.Error("supabase select failed", zap.Error(err))
		return parser.Table{}, unavailable(BackendSupabase, "fetch", err)
	}
	if resp.IsError() {
		s.logger.Error("supabase select rejected", zap.Int("status_code", resp.StatusCode()))
		return parser.Table{}, unavailable(BackendSupabase, "fetch", fmt.Errorf("status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String())))
	}
	tbl := parser.ParseText(resp.String())
	s.logger.Debug("supabase rows fetched", zap.String("backend", BackendSupabase), zap.Int("rows", len(tbl.Rows)))
	return tbl, nil
}
