package analysis

import (
	"context"
	"sort"
	"time"

	"github.com/excotide/moodify/internal/mood"
)

// Policy names.
const (
	PolicyLogin    = "login"
	PolicyCreation = "creation"
	PolicyEarliest = "earliest"
)

// Signals are the caller-supplied inputs to anchor resolution.
type Signals struct {
	AccountCreatedAt *time.Time
	LastLoginAt      *time.Time
	Today            time.Time
}

// HistoryLoader fetches the owner's stored observations. Policies call it
// only when their explicit signals are not enough.
type HistoryLoader func(ctx context.Context) ([]mood.Observation, error)

// AnchorPolicy resolves day-1 of the reporting window.
type AnchorPolicy interface {
	Name() string
	Resolve(ctx context.Context, sig Signals, load HistoryLoader) (time.Time, error)
}

// ResolveAnchor runs p and clamps the result to today.
func ResolveAnchor(ctx context.Context, p AnchorPolicy, sig Signals, load HistoryLoader) (time.Time, error) {
	a, err := p.Resolve(ctx, sig, load)
	if err != nil {
		return time.Time{}, err
	}
	a, today := DayOf(a), DayOf(sig.Today)
	if a.After(today) {
		return today, nil
	}
	return a, nil
}

// creationPolicy anchors to account creation, then to the earliest stored
// observation, then to today.
type creationPolicy struct{}

func (creationPolicy) Name() string { return PolicyCreation }

func (creationPolicy) Resolve(ctx context.Context, sig Signals, load HistoryLoader) (time.Time, error) {
	if sig.AccountCreatedAt != nil {
		return DayOf(*sig.AccountCreatedAt), nil
	}
	return earliestPolicy{}.Resolve(ctx, sig, load)
}

// earliestPolicy anchors to the earliest stored observation, else today.
type earliestPolicy struct{}

func (earliestPolicy) Name() string { return PolicyEarliest }

func (earliestPolicy) Resolve(ctx context.Context, sig Signals, load HistoryLoader) (time.Time, error) {
	obs, err := loadHistory(ctx, load)
	if err != nil {
		return time.Time{}, err
	}
	if d, ok := earliestDay(obs, nil); ok {
		return d, nil
	}
	return DayOf(sig.Today), nil
}

// loginPolicy anchors the rolling window [today-6, today] to the last
// login when it falls inside, else to the earliest day with data inside,
// else to today-6.
type loginPolicy struct{}

func (loginPolicy) Name() string { return PolicyLogin }

func (loginPolicy) Resolve(ctx context.Context, sig Signals, load HistoryLoader) (time.Time, error) {
	today := DayOf(sig.Today)
	rolling := Window{Start: today.AddDate(0, 0, -(WindowDays - 1)), End: today}
	if sig.LastLoginAt != nil && rolling.Contains(*sig.LastLoginAt) {
		return DayOf(*sig.LastLoginAt), nil
	}
	obs, err := loadHistory(ctx, load)
	if err != nil {
		return time.Time{}, err
	}
	if d, ok := earliestDay(obs, &rolling); ok {
		return d, nil
	}
	return rolling.Start, nil
}

func loadHistory(ctx context.Context, load HistoryLoader) ([]mood.Observation, error) {
	if load == nil {
		return nil, nil
	}
	return load(ctx)
}

func earliestDay(obs []mood.Observation, within *Window) (time.Time, bool) {
	var best time.Time
	found := false
	for _, o := range obs {
		if within != nil && !within.Contains(o.At) {
			continue
		}
		d := DayOf(o.At)
		if !found || d.Before(best) {
			best, found = d, true
		}
	}
	return best, found
}

var policies = map[string]AnchorPolicy{}

// RegisterPolicy registers an anchor policy under its name.
func RegisterPolicy(p AnchorPolicy) { policies[p.Name()] = p }

// PolicyByName returns the registered policy.
func PolicyByName(name string) (AnchorPolicy, bool) {
	p, ok := policies[name]
	return p, ok
}

// PolicyNames lists registered policy names in sorted order.
func PolicyNames() []string {
	out := make([]string, 0, len(policies))
	for n := range policies {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func init() {
	RegisterPolicy(loginPolicy{})
	RegisterPolicy(creationPolicy{})
	RegisterPolicy(earliestPolicy{})
}
