package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/excotide/moodify/internal/analysis"
	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"github.com/excotide/moodify/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 5, 20, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTracker(t *testing.T, policy string, p Profile) (*Tracker, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "mood_data.txt"), zap.NewNop())
	pol, ok := analysis.PolicyByName(policy)
	require.True(t, ok)
	tr, err := New(Config{
		Store:    fs,
		Policy:   pol,
		Profile:  StaticProfile(p),
		Now:      clock,
		Location: time.UTC,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	return tr, fs
}

func TestWeeklyScenario(t *testing.T) {
	created := ts("2024-06-01T08:00")
	tr, _ := newTracker(t, analysis.PolicyCreation, Profile{AccountCreatedAt: &created})
	ctx := context.Background()

	require.NoError(t, tr.RecordObservation(ctx, "Kacau", ts("2024-06-02T10:00")))
	require.NoError(t, tr.RecordObservation(ctx, "netral", ts("2024-06-01T09:00")))
	require.NoError(t, tr.RecordObservation(ctx, "Bagus", ts("2024-06-01T18:00")))

	sum, err := tr.ComputeWeeklyStats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ts("2024-06-01T00:00"), sum.Window.Start)
	assert.Equal(t, ts("2024-06-05T00:00"), sum.Window.End)

	require.Len(t, sum.Days, 2)
	assert.InDelta(t, 3.5, sum.Days[0].AverageScore, 1e-9)
	assert.Equal(t, mood.Netral, sum.Days[0].MajorityMood)
	assert.InDelta(t, 1.0, sum.Days[1].AverageScore, 1e-9)
	assert.Equal(t, mood.Kacau, sum.Days[1].MajorityMood)

	assert.Equal(t, 2, sum.Stats.DaysWithData)
	assert.InDelta(t, 2.25, sum.Stats.AverageScore, 1e-9)
	assert.Equal(t, 1, sum.Stats.NegativeDays)
	assert.Equal(t, 0, sum.Stats.PositiveDays)
	assert.False(t, sum.Stats.IsComplete)
}

func TestRecordRejectsFutureForEveryLabel(t *testing.T) {
	tr, fs := newTracker(t, analysis.PolicyLogin, Profile{})
	ctx := context.Background()
	for _, l := range mood.Labels() {
		err := tr.RecordObservation(ctx, l, fixedNow.Add(time.Minute))
		assert.ErrorIs(t, err, mood.ErrFutureDatedObservation, l)
	}
	tbl, err := fs.FetchAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
}

func TestRecordValidatesLabel(t *testing.T) {
	tr, _ := newTracker(t, analysis.PolicyLogin, Profile{})
	ctx := context.Background()

	err := tr.RecordObservation(ctx, "ecstatic", time.Time{})
	assert.ErrorIs(t, err, mood.ErrUnknownMood)

	require.NoError(t, tr.RecordObservation(ctx, "5", time.Time{}))
	obs, err := tr.Snapshot(ctx, "")
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, mood.SangatBagus, obs[0].Mood)
	assert.Equal(t, 5, obs[0].Score)
	assert.True(t, fixedNow.Equal(obs[0].At))
}

func TestLoginPolicyDefaultsToRollingWeek(t *testing.T) {
	tr, err := New(Config{
		Store:    store.NewFileStore(filepath.Join(t.TempDir(), "m.txt"), nil),
		Now:      clock,
		Location: time.UTC,
	})
	require.NoError(t, err)
	w, err := tr.Window(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, ts("2024-05-30T00:00"), w.Start)
	assert.Equal(t, ts("2024-06-05T00:00"), w.End)
}

func TestHistoryAndGraph(t *testing.T) {
	login := ts("2024-06-03T07:00")
	tr, _ := newTracker(t, analysis.PolicyLogin, Profile{LastLoginAt: &login})
	ctx := context.Background()
	require.NoError(t, tr.RecordObservation(ctx, "Bagus", ts("2024-06-04T21:00")))
	require.NoError(t, tr.RecordObservation(ctx, "Buruk", ts("2024-06-04T06:00")))
	require.NoError(t, tr.RecordObservation(ctx, "Netral", ts("2024-06-01T06:00")))

	rows, w, err := tr.ListHistory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ts("2024-06-03T00:00"), w.Start)
	require.Len(t, rows, 2)
	assert.Equal(t, mood.Buruk, rows[0].Mood)
	assert.Equal(t, 2, rows[0].DayIndex)
	assert.Equal(t, "21:00:00", rows[1].Time)

	g, _, err := tr.RollingGraph(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, g[0].Count)
	assert.Equal(t, analysis.GraphSlot{DayOffset: 1, Average: 3, Count: 2}, g[1])
}

func TestImportSkipsFuture(t *testing.T) {
	tr, _ := newTracker(t, analysis.PolicyEarliest, Profile{})
	ctx := context.Background()
	res, err := tr.Import(ctx, []mood.Observation{
		{Mood: mood.Bagus, Score: 0, At: ts("2024-06-02T08:00")},
		{Mood: mood.Kacau, Score: 1, At: ts("2024-06-09T08:00")},
		{Mood: "Sangat bagus", Score: 5, At: ts("2024-06-01T08:00")},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 2, Future: 1}, res)

	obs, err := tr.Snapshot(ctx, "")
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, "Sangat bagus", obs[0].Mood, "snapshot is chronological")
	assert.Equal(t, 4, obs[1].Score)

	sum, err := tr.ComputeWeeklyStats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ts("2024-06-01T00:00"), sum.Window.Start)
}

func TestImportRejectsLabelsTheFileCannotHold(t *testing.T) {
	tr, fs := newTracker(t, analysis.PolicyEarliest, Profile{})
	ctx := context.Background()
	res, err := tr.Import(ctx, []mood.Observation{
		{Mood: "Bagus, mostly", Score: 4, At: ts("2024-06-02T08:00")},
		{Mood: "Netral\nKacau", Score: 3, At: ts("2024-06-02T09:00")},
		{Mood: mood.Netral, Score: 3, At: ts("2024-06-02T10:00")},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 1, Invalid: 2}, res)

	tbl, err := fs.FetchAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, mood.Netral, tbl.Rows[0][1])
}

type brokenStore struct {
	tbl parser.Table
	err error
}

func (b brokenStore) Append(context.Context, mood.Observation) error { return b.err }
func (b brokenStore) FetchAll(context.Context, string) (parser.Table, error) {
	return b.tbl, b.err
}
func (b brokenStore) FetchWindow(context.Context, time.Time, time.Time, string) (parser.Table, error) {
	return b.tbl, b.err
}

func TestStoreFailuresSurface(t *testing.T) {
	down := &store.UnavailableError{Backend: "supabase", Op: "fetch", Err: errors.New("dial tcp: refused")}
	tr, err := New(Config{Store: brokenStore{err: down}, Now: clock})
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, tr.RecordObservation(ctx, "Bagus", time.Time{}), mood.ErrStoreUnavailable)
	_, err = tr.ComputeWeeklyStats(ctx, "u1")
	assert.ErrorIs(t, err, mood.ErrStoreUnavailable)
}

func TestUnrecognizedSchemaSurfaces(t *testing.T) {
	bad := parser.Table{Header: []string{"when", "feeling", "points"}, Rows: [][]string{{"2024-06-01", "Bagus", "4"}}}
	tr, err := New(Config{Store: brokenStore{tbl: bad}, Now: clock})
	require.NoError(t, err)
	_, err = tr.ComputeWeeklyStats(context.Background(), "")
	assert.ErrorIs(t, err, mood.ErrUnrecognizedSchema)
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
