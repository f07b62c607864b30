package workday_test

import (
	"testing"
	"time"

	"leavehub/internal/workday"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCount(t *testing.T) {
	t.Run("full week has five working days", func(t *testing.T) {
		// 2024-06-10 is a Monday
		got, err := workday.Count(date(2024, 6, 10), date(2024, 6, 16), nil)
		assert.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("weekend only range counts zero", func(t *testing.T) {
		// 2024-06-15 Saturday, 2024-06-16 Sunday
		got, err := workday.Count(date(2024, 6, 15), date(2024, 6, 16), nil)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("single weekday counts one", func(t *testing.T) {
		got, err := workday.Count(date(2024, 6, 12), date(2024, 6, 12), nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("weekday holiday inside range is excluded", func(t *testing.T) {
		got, err := workday.Count(
			date(2024, 6, 10), date(2024, 6, 14),
			[]time.Time{date(2024, 6, 12)},
		)
		assert.NoError(t, err)
		assert.Equal(t, 4, got)
	})

	t.Run("weekend holiday does not reduce the count", func(t *testing.T) {
		got, err := workday.Count(
			date(2024, 6, 10), date(2024, 6, 16),
			[]time.Time{date(2024, 6, 15)},
		)
		assert.NoError(t, err)
		assert.Equal(t, 5, got)
	})

	t.Run("holiday outside range is ignored", func(t *testing.T) {
		got, err := workday.Count(
			date(2024, 6, 10), date(2024, 6, 11),
			[]time.Time{date(2024, 6, 17)},
		)
		assert.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("duplicate holiday dates only subtract once", func(t *testing.T) {
		got, err := workday.Count(
			date(2024, 6, 10), date(2024, 6, 14),
			[]time.Time{date(2024, 6, 12), date(2024, 6, 12)},
		)
		assert.NoError(t, err)
		assert.Equal(t, 4, got)
	})

	t.Run("negative inverted range", func(t *testing.T) {
		_, err := workday.Count(date(2024, 6, 14), date(2024, 6, 10), nil)
		assert.ErrorIs(t, err, workday.ErrInvalidRange)
	})

	t.Run("never negative when every weekday is a holiday", func(t *testing.T) {
		got, err := workday.Count(
			date(2024, 6, 12), date(2024, 6, 12),
			[]time.Time{date(2024, 6, 12)},
		)
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})
}

func TestIsWeekday(t *testing.T) {
	assert.True(t, workday.IsWeekday(date(2024, 6, 14)))  // Friday
	assert.False(t, workday.IsWeekday(date(2024, 6, 15))) // Saturday
	assert.False(t, workday.IsWeekday(date(2024, 6, 16))) // Sunday
	assert.True(t, workday.IsWeekday(date(2024, 6, 17)))  // Monday
}
