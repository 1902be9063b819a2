package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BeautyService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func TestEffectiveWorkingInterval(t *testing.T) {
	business := WeeklySchedule{
		{Weekday: time.Monday, OpenTime: ts("09:00"), CloseTime: ts("18:00")},
		{Weekday: time.Tuesday, OpenTime: ts("09:00"), CloseTime: ts("18:00")},
	}

	t.Run("business closed", func(t *testing.T) {
		_, ok := EffectiveWorkingInterval(business, nil, time.Sunday)
		assert.False(t, ok)
	})

	t.Run("position without schedule", func(t *testing.T) {
		got, ok := EffectiveWorkingInterval(business, nil, time.Monday)
		assert.True(t, ok)
		assert.Equal(t, iv("09:00", "18:00"), got)
	})

	t.Run("position narrows business hours", func(t *testing.T) {
		position := WeeklySchedule{{Weekday: time.Monday, OpenTime: ts("12:00"), CloseTime: ts("20:00")}}
		got, ok := EffectiveWorkingInterval(business, position, time.Monday)
		assert.True(t, ok)
		assert.Equal(t, iv("12:00", "18:00"), got)
	})

	t.Run("position does not work that day", func(t *testing.T) {
		position := WeeklySchedule{{Weekday: time.Monday, OpenTime: ts("12:00"), CloseTime: ts("20:00")}}
		_, ok := EffectiveWorkingInterval(business, position, time.Tuesday)
		assert.False(t, ok)
	})

	t.Run("no intersection", func(t *testing.T) {
		position := WeeklySchedule{{Weekday: time.Monday, OpenTime: ts("18:00"), CloseTime: ts("22:00")}}
		_, ok := EffectiveWorkingInterval(business, position, time.Monday)
		assert.False(t, ok)
	})
}
