package analysis

import (
	"testing"

	"github.com/excotide/moodify/internal/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryOrdersWithinDay(t *testing.T) {
	in := []mood.Observation{
		obs(mood.Bagus, "2024-06-02T18:00"),
		obs(mood.Kacau, "2024-06-02T07:30"),
		obs(mood.Netral, "2024-06-01T12:00"),
	}
	w := NewWindow(day("2024-06-01"), day("2024-06-05"))
	rows := History(in, w)
	require.Len(t, rows, 3)
	assert.Equal(t, HistoryRow{Date: day("2024-06-01"), DayIndex: 1, Time: "12:00:00", Mood: mood.Netral, Score: 3}, rows[0])
	assert.Equal(t, "07:30:00", rows[1].Time)
	assert.Equal(t, 2, rows[1].DayIndex)
	assert.Equal(t, mood.Bagus, rows[2].Mood)
}

func TestRollingGraphZeroFills(t *testing.T) {
	in := []mood.Observation{
		obs(mood.Netral, "2024-06-01T09:00"),
		obs(mood.Bagus, "2024-06-01T18:00"),
		obs(mood.Kacau, "2024-06-04T10:00"),
	}
	w := NewWindow(day("2024-06-01"), day("2024-06-10"))
	g := RollingGraph(ReduceDays(in, w))
	require.Len(t, g, WindowDays)
	assert.Equal(t, GraphSlot{DayOffset: 0, Average: 3.5, Count: 2}, g[0])
	assert.Equal(t, GraphSlot{DayOffset: 1}, g[1])
	assert.Equal(t, GraphSlot{DayOffset: 3, Average: 1, Count: 1}, g[3])
	assert.Equal(t, GraphSlot{DayOffset: 6}, g[6])
}
