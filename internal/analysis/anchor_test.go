package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/excotide/moodify/internal/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	obs   []mood.Observation
	err   error
	calls int
}

func (c *countingLoader) load(context.Context) ([]mood.Observation, error) {
	c.calls++
	return c.obs, c.err
}

func ptr(t time.Time) *time.Time { return &t }

func resolve(t *testing.T, name string, sig Signals, l *countingLoader) time.Time {
	t.Helper()
	p, ok := PolicyByName(name)
	require.True(t, ok, name)
	a, err := ResolveAnchor(context.Background(), p, sig, l.load)
	require.NoError(t, err)
	return a
}

func TestCreationPolicy(t *testing.T) {
	today := at("2024-06-10T12:00")
	l := &countingLoader{obs: []mood.Observation{obs(mood.Bagus, "2024-06-03T08:00"), obs(mood.Bagus, "2024-05-20T08:00")}}

	got := resolve(t, PolicyCreation, Signals{AccountCreatedAt: ptr(at("2024-06-05T22:00")), Today: today}, l)
	assert.Equal(t, day("2024-06-05"), got)
	assert.Equal(t, 0, l.calls, "history must not be fetched when the account date is known")

	got = resolve(t, PolicyCreation, Signals{Today: today}, l)
	assert.Equal(t, day("2024-05-20"), got)
	assert.Equal(t, 1, l.calls)

	got = resolve(t, PolicyCreation, Signals{Today: today}, &countingLoader{})
	assert.Equal(t, day("2024-06-10"), got)
}

func TestCreationPolicyClampsFuture(t *testing.T) {
	got := resolve(t, PolicyCreation, Signals{AccountCreatedAt: ptr(at("2024-07-01T00:00")), Today: at("2024-06-10T09:00")}, &countingLoader{})
	assert.Equal(t, day("2024-06-10"), got)
}

func TestLoginPolicy(t *testing.T) {
	today := at("2024-06-10T12:00")
	data := []mood.Observation{
		obs(mood.Netral, "2024-06-01T08:00"),
		obs(mood.Netral, "2024-06-06T08:00"),
		obs(mood.Netral, "2024-06-08T08:00"),
	}

	l := &countingLoader{obs: data}
	got := resolve(t, PolicyLogin, Signals{LastLoginAt: ptr(at("2024-06-07T21:00")), Today: today}, l)
	assert.Equal(t, day("2024-06-07"), got)
	assert.Equal(t, 0, l.calls)

	got = resolve(t, PolicyLogin, Signals{LastLoginAt: ptr(at("2024-05-01T21:00")), Today: today}, l)
	assert.Equal(t, day("2024-06-06"), got, "earliest day with data inside the rolling week")

	got = resolve(t, PolicyLogin, Signals{Today: today}, &countingLoader{obs: data[:1]})
	assert.Equal(t, day("2024-06-04"), got, "falls back to today-6")
}

func TestEarliestPolicy(t *testing.T) {
	got := resolve(t, PolicyEarliest, Signals{Today: at("2024-06-10T00:00")},
		&countingLoader{obs: []mood.Observation{obs(mood.Buruk, "2024-06-09T08:00"), obs(mood.Buruk, "2024-06-02T08:00")}})
	assert.Equal(t, day("2024-06-02"), got)
}

func TestAnchorIsIdempotent(t *testing.T) {
	sig := Signals{LastLoginAt: ptr(at("2024-06-09T10:00")), AccountCreatedAt: ptr(at("2024-06-02T10:00")), Today: at("2024-06-10T10:00")}
	l := &countingLoader{obs: []mood.Observation{obs(mood.Bagus, "2024-06-05T08:00")}}
	for _, name := range PolicyNames() {
		first := resolve(t, name, sig, l)
		second := resolve(t, name, sig, l)
		assert.Equal(t, first, second, name)
	}
}

func TestAnchorLoaderError(t *testing.T) {
	p, _ := PolicyByName(PolicyLogin)
	boom := errors.New("boom")
	_, err := ResolveAnchor(context.Background(), p, Signals{Today: at("2024-06-10T00:00")}, (&countingLoader{err: boom}).load)
	assert.ErrorIs(t, err, boom)
}

func TestPolicyRegistry(t *testing.T) {
	assert.Equal(t, []string{PolicyCreation, PolicyEarliest, PolicyLogin}, PolicyNames())
	_, ok := PolicyByName("weekly")
	assert.False(t, ok)
}
