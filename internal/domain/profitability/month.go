package profitability

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a reporting month. The zero value is not a valid month.
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return m.Start().Format(monthLayout)
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Start is the first instant of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the following month (exclusive bound).
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

func (m Month) AddMonths(n int) Month {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

func (m Month) Before(other Month) bool {
	return m.Start().Before(other.Start())
}

func (m Month) After(other Month) bool {
	return m.Start().After(other.Start())
}

// Overlaps reports whether the date range [from, to] touches the month.
// A nil to means the range is open ended.
func (m Month) Overlaps(from time.Time, to *time.Time) bool {
	if !from.Before(m.End()) {
		return false
	}
	if to != nil && to.Before(m.Start()) {
		return false
	}
	return true
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
