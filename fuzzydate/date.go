package fuzzydate

import (
	"database/sql/driver"
	"fmt"
	"time"

	"fuzzydates/oops"
)

const DateLayout = "2006-01-02"

const (
	MinYear = 1
	MaxYear = 9999
)

// Date is a calendar date in its canonical YYYY-MM-DD form. Values only come from NewDate,
// ParseDate or Scan, so a Date in hand is always a real day.
type Date string

// NewDate zero-pads the year, so years 1 through 999 are valid ("0999-01-01") rather than
// rejected as malformed text.
func NewDate(year, month, day int) (Date, error) {
	text := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if year < MinYear || year > MaxYear {
		return "", oops.Wrap(&CalendarError{
			Text:  text,
			Inner: fmt.Errorf("year %d is outside of [%d, %d]", year, MinYear, MaxYear),
		})
	}

	return ParseDate(text)
}

func ParseDate(text string) (Date, error) {
	parsed, err := time.Parse(DateLayout, text)
	if err != nil {
		return "", oops.Wrap(&CalendarError{Text: text, Inner: err})
	}
	if parsed.Year() < MinYear {
		return "", oops.Wrap(&CalendarError{
			Text:  text,
			Inner: fmt.Errorf("year %d is outside of [%d, %d]", parsed.Year(), MinYear, MaxYear),
		})
	}
	return Date(parsed.Format(DateLayout)), nil
}

func MustDate(year, month, day int) Date {
	date, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return date
}

// Time is midnight UTC at the start of the date.
func (d Date) Time() time.Time {
	parsed, err := time.Parse(DateLayout, string(d))
	if err != nil {
		panic(err)
	}
	return parsed
}

func (d Date) Year() int {
	return d.Time().Year()
}

func (d Date) Month() time.Month {
	return d.Time().Month()
}

func (d Date) Day() int {
	return d.Time().Day()
}

func (d Date) String() string {
	return string(d)
}

func (d *Date) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case time.Time:
		text = v.Format(DateLayout)
	default:
		return oops.Newf("cannot scan %T into a date", src)
	}

	if len(text) > len(DateLayout) {
		// sqlite may hand back a timestamp for date columns
		text = text[:len(DateLayout)]
	}
	parsed, err := ParseDate(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}
