package booking

import (
	"time"

	"uslugi/internal/domain"
)

// gridCells is always 6 weeks; leading days borrow from the previous
// month and trailing days from the next.
const gridCells = 42

const maxDayDots = 3

// DayKey buckets a timestamp by calendar date in the given location.
// Bucketing is local-date based on purpose: provider/client timezone
// reconciliation is an open question upstream and is not guessed at here.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

type CalendarCell struct {
	Date     string   `json:"date"`
	InMonth  bool     `json:"in_month"`
	Count    int      `json:"count"`
	Dots     []string `json:"dots,omitempty"`
	Overflow int      `json:"overflow,omitempty"`
}

// MonthGrid returns the 42 dates shown for a month, Monday-first.
func MonthGrid(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := (int(first.Weekday()) + 6) % 7 // Monday = 0
	start := first.AddDate(0, 0, -lead)

	days := make([]time.Time, gridCells)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// BucketByDay groups bookings by their local-date key.
func BucketByDay(bookings []domain.Booking, loc *time.Location) map[string][]domain.Booking {
	buckets := make(map[string][]domain.Booking)
	for _, b := range bookings {
		key := DayKey(b.ScheduledAt, loc)
		buckets[key] = append(buckets[key], b)
	}
	return buckets
}

// BuildCalendar projects one month of bookings onto the 42-cell grid.
// Each day carries up to maxDayDots status indicators plus an overflow
// count for the rest.
func BuildCalendar(year int, month time.Month, bookings []domain.Booking, loc *time.Location) []CalendarCell {
	buckets := BucketByDay(bookings, loc)
	grid := MonthGrid(year, month, loc)

	cells := make([]CalendarCell, 0, gridCells)
	for _, day := range grid {
		key := day.Format("2006-01-02")
		dayBookings := buckets[key]

		cell := CalendarCell{
			Date:    key,
			InMonth: day.Month() == month,
			Count:   len(dayBookings),
		}
		for i, b := range dayBookings {
			if i == maxDayDots {
				cell.Overflow = len(dayBookings) - maxDayDots
				break
			}
			cell.Dots = append(cell.Dots, string(b.Status))
		}
		cells = append(cells, cell)
	}
	return cells
}
