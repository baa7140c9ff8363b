// Package period models the calendar-month billing period ("YYYY-MM").
package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("period: expected YYYY-MM")

// Period is a calendar billing month.
type Period struct {
	Year  int
	Month time.Month
}

func Parse(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func FromTime(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// FirstDay is the reference date for charge-map windows.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay is the inclusive upper bound used for tariff effective dates.
func (p Period) LastDay() time.Time {
	return p.FirstDay().AddDate(0, 1, 0).Add(-24 * time.Hour)
}

func (p Period) Days() int {
	return p.LastDay().Day()
}

func (p Period) Previous() Period {
	t := p.FirstDay().AddDate(0, -1, 0)
	return FromTime(t)
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
