package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uslugi/internal/domain"
)

func TestMonthGridAlwaysFortyTwoCells(t *testing.T) {
	loc := time.UTC

	months := []struct {
		year  int
		month time.Month
	}{
		{2026, time.January},   // starts Thursday
		{2026, time.February},  // 28 days
		{2024, time.February},  // leap year
		{2026, time.June},      // starts Monday, no lead
		{2026, time.August},    // 31 days starting Saturday
		{2025, time.December},
	}

	for _, m := range months {
		grid := MonthGrid(m.year, m.month, loc)
		require.Len(t, grid, 42)

		// Monday-first: the grid always opens on a Monday.
		assert.Equal(t, time.Monday, grid[0].Weekday())

		// Consecutive days, no gaps.
		for i := 1; i < len(grid); i++ {
			assert.Equal(t, grid[i-1].AddDate(0, 0, 1), grid[i])
		}

		// The first of the month is somewhere in the first week.
		first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, loc)
		lead := (int(first.Weekday()) + 6) % 7
		assert.Equal(t, first, grid[lead])
	}
}

func TestMonthGridJune2026NoLeadDays(t *testing.T) {
	// June 1st 2026 is a Monday: the grid starts on the 1st itself.
	grid := MonthGrid(2026, time.June, time.UTC)
	assert.Equal(t, "2026-06-01", grid[0].Format("2006-01-02"))
}

func TestDayKeyIgnoresDuration(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, time.March, 10, 23, 0, 0, 0, loc)

	short := domain.Booking{ScheduledAt: start, DurationMinutes: 30}
	long := domain.Booking{ScheduledAt: start, DurationMinutes: 180} // runs past midnight

	// Bucketing is by start date only; a booking never spans two cells.
	assert.Equal(t, DayKey(short.ScheduledAt, loc), DayKey(long.ScheduledAt, loc))
	assert.Equal(t, "2026-03-10", DayKey(long.ScheduledAt, loc))
}

func TestDayKeyUsesLocalDate(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Warsaw.
	utc := time.Date(2026, time.March, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-10", DayKey(utc, time.UTC))
	assert.Equal(t, "2026-03-11", DayKey(utc, warsaw))
}

func TestBuildCalendarDotsAndOverflow(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, time.March, 15, 10, 0, 0, 0, loc)

	bookings := []domain.Booking{
		{ScheduledAt: day, Status: domain.BookingPending},
		{ScheduledAt: day.Add(time.Hour), Status: domain.BookingConfirmed},
		{ScheduledAt: day.Add(2 * time.Hour), Status: domain.BookingConfirmed},
		{ScheduledAt: day.Add(3 * time.Hour), Status: domain.BookingCompleted},
		{ScheduledAt: day.Add(4 * time.Hour), Status: domain.BookingPending},
	}

	cells := BuildCalendar(2026, time.March, bookings, loc)
	require.Len(t, cells, 42)

	var cell *CalendarCell
	for i := range cells {
		if cells[i].Date == "2026-03-15" {
			cell = &cells[i]
			break
		}
	}
	require.NotNil(t, cell)

	assert.True(t, cell.InMonth)
	assert.Equal(t, 5, cell.Count)
	assert.Equal(t, []string{"pending", "confirmed", "confirmed"}, cell.Dots)
	assert.Equal(t, 2, cell.Overflow)
}

func TestBuildCalendarEmptyDay(t *testing.T) {
	cells := BuildCalendar(2026, time.March, nil, time.UTC)
	require.Len(t, cells, 42)
	for _, cell := range cells {
		assert.Zero(t, cell.Count)
		assert.Empty(t, cell.Dots)
		assert.Zero(t, cell.Overflow)
	}
}

func TestBuildCalendarMarksOutOfMonthCells(t *testing.T) {
	cells := BuildCalendar(2026, time.February, nil, time.UTC)

	inMonth := 0
	for _, cell := range cells {
		if cell.InMonth {
			inMonth++
		}
	}
	assert.Equal(t, 28, inMonth)
}
