package dateutil

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidFormat = errors.New("dateutil: invalid date format")

const ymdLayout = "2006-01-02"

type Day struct {
	Year  int
	Month time.Month
	Dom   int
}

func ParseDay(ymd string) (Day, error) {
	t, err := time.ParseInLocation(ymdLayout, ymd, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidFormat, ymd)
	}
	if t.Format(ymdLayout) != ymd {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidFormat, ymd)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Dom: d}, nil
}

func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Dom: d}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Dom)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) Equal(other Day) bool {
	return d == other
}

func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Dom < other.Dom
}

func (d Day) After(other Day) bool {
	return other.Before(d)
}

func (d Day) anchor() time.Time {
	return time.Date(d.Year, d.Month, d.Dom, 12, 0, 0, 0, time.Local)
}

func (d Day) Weekday() time.Weekday {
	return d.anchor().Weekday()
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.anchor().AddDate(0, 0, n))
}

func (d Day) AddMonths(n int) Day {
	return DayOf(d.anchor().AddDate(0, n, 0))
}

func (d Day) AddYears(n int) Day {
	return DayOf(d.anchor().AddDate(n, 0, 0))
}
