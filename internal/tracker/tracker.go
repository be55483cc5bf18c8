package tracker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/analysis"
	"github.com/excotide/moodify/internal/mood"
	"github.com/excotide/moodify/internal/parser"
	"github.com/excotide/moodify/internal/store"
	"go.uber.org/zap"
)

// Profile carries the anchor signals known for an owner.
type Profile struct {
	AccountCreatedAt *time.Time
	LastLoginAt      *time.Time
}

// ProfileSource looks up the anchor signals of an owner.
type ProfileSource interface {
	Profile(ctx context.Context, owner string) (Profile, error)
}

// StaticProfile returns the same profile for every owner.
type StaticProfile Profile

func (p StaticProfile) Profile(context.Context, string) (Profile, error) { return Profile(p), nil }

// Config wires a Tracker. Only Store is required.
type Config struct {
	Store   store.Store
	Policy  analysis.AnchorPolicy
	Profile ProfileSource
	// Owner is stamped on recorded and imported observations.
	Owner string
	// Now defaults to time.Now.
	Now func() time.Time
	// Location reads timestamps without an offset. Nil means time.Local.
	Location *time.Location
	Logger   *zap.Logger
}

// Tracker records observations and answers weekly queries. It keeps no
// state between calls: every query re-fetches and re-reduces.
type Tracker struct {
	store   store.Store
	policy  analysis.AnchorPolicy
	profile ProfileSource
	owner   string
	now     func() time.Time
	loc     *time.Location
	logger  *zap.Logger
}

// New builds a Tracker. The login policy is used when none is given.
func New(c Config) (*Tracker, error) {
	if c.Store == nil {
		return nil, fmt.Errorf("tracker: store is required")
	}
	t := &Tracker{
		store:   c.Store,
		policy:  c.Policy,
		profile: c.Profile,
		owner:   c.Owner,
		now:     c.Now,
		loc:     c.Location,
		logger:  c.Logger,
	}
	if t.policy == nil {
		p, ok := analysis.PolicyByName(analysis.PolicyLogin)
		if !ok {
			return nil, fmt.Errorf("tracker: login policy not registered")
		}
		t.policy = p
	}
	if t.profile == nil {
		t.profile = StaticProfile{}
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.loc == nil {
		t.loc = time.Local
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	return t, nil
}

// Summary is the weekly statistics of one window together with its days.
type Summary struct {
	Window analysis.Window
	Days   []analysis.DayReduction
	Stats  analysis.WeeklyStats
}

// ImportResult counts the outcome of a bulk import.
type ImportResult struct {
	Added  int
	Future int
	// Invalid counts labels the flat-file line format cannot hold.
	Invalid int
}

// RecordObservation validates label and stores it at at. A zero at means now.
func (t *Tracker) RecordObservation(ctx context.Context, label string, at time.Time) error {
	canonical, ok := mood.Canonical(label)
	if !ok {
		return fmt.Errorf("%w: %q (use one of %v)", mood.ErrUnknownMood, label, mood.Labels())
	}
	now := t.now()
	if at.IsZero() {
		at = now.In(t.loc)
	}
	if at.After(now) {
		return fmt.Errorf("%w: %s", mood.ErrFutureDatedObservation, at.Format(time.RFC3339))
	}
	o := mood.New(canonical, at, t.owner)
	if err := t.store.Append(ctx, o); err != nil {
		return err
	}
	t.logger.Info("observation recorded",
		zap.String("mood", o.Mood),
		zap.Int("score", o.Score),
		zap.Time("at", o.At),
		zap.String("owner", o.Owner),
	)
	return nil
}

// Import appends parsed observations. Future-dated rows and labels holding a
// comma or line break are skipped and counted. The first store failure stops
// the import.
func (t *Tracker) Import(ctx context.Context, obs []mood.Observation) (ImportResult, error) {
	var res ImportResult
	now := t.now()
	for _, o := range obs {
		if o.At.After(now) {
			res.Future++
			continue
		}
		if strings.ContainsAny(o.Mood, ",\r\n") {
			res.Invalid++
			continue
		}
		if o.Owner == "" {
			o.Owner = t.owner
		}
		if !mood.ValidScore(o.Score) {
			o.Score = mood.ScoreFor(o.Mood)
		}
		if err := t.store.Append(ctx, o); err != nil {
			return res, err
		}
		res.Added++
	}
	t.logger.Info("import finished",
		zap.Int("added", res.Added),
		zap.Int("future", res.Future),
		zap.Int("invalid", res.Invalid),
	)
	return res, nil
}

// Snapshot returns every stored observation of owner in chronological order.
func (t *Tracker) Snapshot(ctx context.Context, owner string) ([]mood.Observation, error) {
	tbl, err := t.store.FetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	return t.parse(tbl, owner)
}

// Window resolves the anchor for owner and returns the current reporting window.
func (t *Tracker) Window(ctx context.Context, owner string) (analysis.Window, error) {
	p, err := t.profile.Profile(ctx, owner)
	if err != nil {
		return analysis.Window{}, fmt.Errorf("load profile: %w", err)
	}
	today := t.now().In(t.loc)
	sig := analysis.Signals{
		AccountCreatedAt: p.AccountCreatedAt,
		LastLoginAt:      p.LastLoginAt,
		Today:            today,
	}
	load := func(ctx context.Context) ([]mood.Observation, error) { return t.Snapshot(ctx, owner) }
	anchor, err := analysis.ResolveAnchor(ctx, t.policy, sig, load)
	if err != nil {
		return analysis.Window{}, err
	}
	w := analysis.NewWindow(anchor, today)
	t.logger.Debug("window resolved",
		zap.String("policy", t.policy.Name()),
		zap.String("owner", owner),
		zap.Time("start", w.Start),
		zap.Time("end", w.End),
	)
	return w, nil
}

// ComputeWeeklyStats reduces the owner's current window.
func (t *Tracker) ComputeWeeklyStats(ctx context.Context, owner string) (Summary, error) {
	w, obs, err := t.windowed(ctx, owner)
	if err != nil {
		return Summary{}, err
	}
	days := analysis.ReduceDays(obs, w)
	return Summary{Window: w, Days: days, Stats: analysis.Aggregate(days)}, nil
}

// ListHistory lists the observations of the owner's current window.
func (t *Tracker) ListHistory(ctx context.Context, owner string) ([]analysis.HistoryRow, analysis.Window, error) {
	w, obs, err := t.windowed(ctx, owner)
	if err != nil {
		return nil, analysis.Window{}, err
	}
	return analysis.History(obs, w), w, nil
}

// RollingGraph returns the seven graph slots of the owner's current window.
func (t *Tracker) RollingGraph(ctx context.Context, owner string) ([analysis.WindowDays]analysis.GraphSlot, analysis.Window, error) {
	w, obs, err := t.windowed(ctx, owner)
	if err != nil {
		return [analysis.WindowDays]analysis.GraphSlot{}, analysis.Window{}, err
	}
	return analysis.RollingGraph(analysis.ReduceDays(obs, w)), w, nil
}

func (t *Tracker) windowed(ctx context.Context, owner string) (analysis.Window, []mood.Observation, error) {
	w, err := t.Window(ctx, owner)
	if err != nil {
		return analysis.Window{}, nil, err
	}
	tbl, err := t.store.FetchWindow(ctx, w.Start, w.End, owner)
	if err != nil {
		return analysis.Window{}, nil, err
	}
	obs, err := t.parse(tbl, owner)
	if err != nil {
		return analysis.Window{}, nil, err
	}
	return w, obs, nil
}

func (t *Tracker) parse(tbl parser.Table, owner string) ([]mood.Observation, error) {
	res, err := parser.Parse(tbl, parser.Options{Location: t.loc})
	if err != nil {
		return nil, err
	}
	if res.Skipped > 0 {
		t.logger.Warn("malformed rows skipped",
			zap.String("owner", owner),
			zap.Int("rows", res.Rows),
			zap.Int("skipped", res.Skipped),
		)
	}
	obs := res.Observations
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].At.Before(obs[j].At) })
	return obs, nil
}
