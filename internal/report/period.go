package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid report period")

// Period is a validated calendar month.
type Period struct {
	Month int
	Year  int
}

// ParsePeriod validates raw month/year query values before any query is built.
func ParsePeriod(month, year string) (Period, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Period{}, fmt.Errorf("%w: month %q is not a number", ErrInvalidPeriod, month)
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Period{}, fmt.Errorf("%w: year %q is not a number", ErrInvalidPeriod, year)
	}
	return NewPeriod(m, y)
}

func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month must be within 1-12", ErrInvalidPeriod)
	}
	if year < 1000 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year must have four digits", ErrInvalidPeriod)
	}
	return Period{Month: month, Year: year}, nil
}

// Range returns [from, to) in UTC covering the month as observed in loc.
func (p Period) Range(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)
	return from.UTC(), to.UTC()
}

// Days lists every calendar day of the month, 1 through the last.
func (p Period) Days() []int {
	last := time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]int, last)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
