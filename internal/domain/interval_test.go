package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func iv(start, end string) Interval {
	return Interval{Start: ts(start), End: ts(end)}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"adjacent", iv("10:00", "11:00"), iv("11:00", "12:00"), false},
		{"nested", iv("10:00", "12:00"), iv("10:30", "11:00"), true},
		{"partial", iv("10:00", "11:00"), iv("10:59", "12:00"), true},
		{"disjoint", iv("08:00", "09:00"), iv("10:00", "11:00"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntersect(t *testing.T) {
	got, ok := Intersect(iv("09:00", "18:00"), iv("12:00", "20:00"))
	assert.True(t, ok)
	assert.Equal(t, iv("12:00", "18:00"), got)

	_, ok = Intersect(iv("09:00", "12:00"), iv("12:00", "20:00"))
	assert.False(t, ok)
}

func TestFreeIntervals(t *testing.T) {
	working := iv("09:00", "18:00")

	tests := []struct {
		name string
		busy []Interval
		want []Interval
	}{
		{
			name: "no orders",
			busy: nil,
			want: []Interval{iv("09:00", "18:00")},
		},
		{
			name: "single order in the middle",
			busy: []Interval{iv("12:00", "13:00")},
			want: []Interval{iv("09:00", "12:00"), iv("13:00", "18:00")},
		},
		{
			name: "unsorted and overlapping orders",
			busy: []Interval{iv("15:00", "16:00"), iv("10:00", "11:30"), iv("11:00", "12:00")},
			want: []Interval{iv("09:00", "10:00"), iv("12:00", "15:00"), iv("16:00", "18:00")},
		},
		{
			name: "orders touching the edges",
			busy: []Interval{iv("08:00", "09:30"), iv("17:00", "19:00")},
			want: []Interval{iv("09:30", "17:00")},
		},
		{
			name: "back to back orders",
			busy: []Interval{iv("09:00", "10:00"), iv("10:00", "11:00")},
			want: []Interval{iv("11:00", "18:00")},
		},
		{
			name: "fully booked",
			busy: []Interval{iv("09:00", "18:00")},
			want: []Interval{},
		},
		{
			name: "order outside working hours",
			busy: []Interval{iv("19:00", "20:00")},
			want: []Interval{iv("09:00", "18:00")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FreeIntervals(working, tc.busy))
		})
	}
}

func TestFreeIntervals_InvalidWorkingInterval(t *testing.T) {
	assert.Empty(t, FreeIntervals(iv("18:00", "09:00"), nil))
}
