package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsInterval_LowerBound(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 20, 0, 0, time.UTC)

	tests := []struct {
		interval    StatisticsInterval
		want        time.Time
		granularity Granularity
	}{
		{IntervalWeek, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), GranularityDay},
		{IntervalMonth, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), GranularityDay},
		{IntervalThreeMonths, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), GranularityMonth},
	}

	for _, tc := range tests {
		t.Run(string(tc.interval), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.interval.LowerBound(now))
			assert.Equal(t, tc.granularity, tc.interval.Granularity())
		})
	}
}

func TestStatisticsInterval_ThreeMonthsCrossesYear(t *testing.T) {
	now := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), IntervalThreeMonths.LowerBound(now))
}

func TestStatisticsInterval_IsValid(t *testing.T) {
	assert.True(t, IntervalWeek.IsValid())
	assert.False(t, StatisticsInterval("year").IsValid())
}
