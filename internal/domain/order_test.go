package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_CanTransitionTo(t *testing.T) {
	all := []OrderStatus{StatusActive, StatusApproved, StatusDeclined, StatusCancelled, StatusCompleted}
	allowed := map[OrderStatus]map[OrderStatus]bool{
		StatusActive:   {StatusApproved: true, StatusDeclined: true, StatusCancelled: true},
		StatusApproved: {StatusCancelled: true, StatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			order := &Order{Status: from}
			assert.Equal(t, allowed[from][to], order.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrder_IsTerminal(t *testing.T) {
	assert.False(t, (&Order{Status: StatusActive}).IsTerminal())
	assert.False(t, (&Order{Status: StatusApproved}).IsTerminal())
	assert.True(t, (&Order{Status: StatusDeclined}).IsTerminal())
	assert.True(t, (&Order{Status: StatusCancelled}).IsTerminal())
	assert.True(t, (&Order{Status: StatusCompleted}).IsTerminal())
}

func TestOrder_TimeBounds(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	order := &Order{
		OrderDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       ts("10:30"),
		DurationMinutes: 90,
	}

	assert.Equal(t, time.Date(2026, 3, 10, 10, 30, 0, 0, loc), order.StartsAt(loc))
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, loc), order.EndsAt(loc))

	interval, err := order.Interval()
	require.NoError(t, err)
	assert.Equal(t, iv("10:30", "12:00"), interval)
}

func TestBusyIntervals_SkipsNonBlocking(t *testing.T) {
	orders := []*Order{
		{StartTime: ts("10:00"), DurationMinutes: 60, Status: StatusActive},
		{StartTime: ts("11:00"), DurationMinutes: 60, Status: StatusCancelled},
		{StartTime: ts("12:00"), DurationMinutes: 30, Status: StatusApproved},
		{StartTime: ts("13:00"), DurationMinutes: 30, Status: StatusCompleted},
	}

	assert.Equal(t, []Interval{iv("10:00", "11:00"), iv("12:00", "12:30")}, BusyIntervals(orders))
}
