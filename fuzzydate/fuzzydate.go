// Package fuzzydate turns partially known dates into calendar dates.
//
// A FuzzyDate knows its year, its year and month, or its full year, month and day. Anything else
// (a month without a year, a day without a month) is malformed upstream data and is rejected
// rather than guessed at.
package fuzzydate

import (
	"errors"
	"fmt"
	"strings"

	"fuzzydates/oops"
)

type FuzzyDate struct {
	MaybeYear  *int `json:"year" yaml:"year"`
	MaybeMonth *int `json:"month" yaml:"month"`
	MaybeDay   *int `json:"day" yaml:"day"`
}

func New(maybeYear, maybeMonth, maybeDay *int) FuzzyDate {
	return FuzzyDate{
		MaybeYear:  maybeYear,
		MaybeMonth: maybeMonth,
		MaybeDay:   maybeDay,
	}
}

func Year(year int) FuzzyDate {
	return New(&year, nil, nil)
}

func YearMonth(year, month int) FuzzyDate {
	return New(&year, &month, nil)
}

func YearMonthDay(year, month, day int) FuzzyDate {
	return New(&year, &month, &day)
}

func Unknown() FuzzyDate {
	return New(nil, nil, nil)
}

type Precision int

const (
	PrecisionNone Precision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDay
)

func (p Precision) String() string {
	switch p {
	case PrecisionNone:
		return "none"
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// Precision is the finest populated field. It says nothing about whether the fields are nested
// correctly, use Validate for that.
func (fd FuzzyDate) Precision() Precision {
	switch {
	case fd.MaybeDay != nil:
		return PrecisionDay
	case fd.MaybeMonth != nil:
		return PrecisionMonth
	case fd.MaybeYear != nil:
		return PrecisionYear
	default:
		return PrecisionNone
	}
}

// String renders unknown fields as question marks, e.g. "2024-07-??".
func (fd FuzzyDate) String() string {
	var b strings.Builder
	if fd.MaybeYear != nil {
		fmt.Fprintf(&b, "%04d", *fd.MaybeYear)
	} else {
		b.WriteString("????")
	}
	b.WriteString("-")
	if fd.MaybeMonth != nil {
		fmt.Fprintf(&b, "%02d", *fd.MaybeMonth)
	} else {
		b.WriteString("??")
	}
	b.WriteString("-")
	if fd.MaybeDay != nil {
		fmt.Fprintf(&b, "%02d", *fd.MaybeDay)
	} else {
		b.WriteString("??")
	}
	return b.String()
}

var ErrPrecondition = errors.New("fuzzy date precondition violated")
var ErrCalendar = errors.New("invalid calendar date")

type PreconditionError struct {
	Fuzzy  FuzzyDate
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Fuzzy, e.Reason)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

type CalendarError struct {
	Text  string
	Inner error
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("invalid calendar date %s: %v", e.Text, e.Inner)
}

func (e *CalendarError) Unwrap() error {
	return e.Inner
}

func (e *CalendarError) Is(target error) bool {
	return target == ErrCalendar
}

// Validate checks that the populated fields form a prefix of (year, month, day).
func (fd FuzzyDate) Validate() error {
	if fd.MaybeYear == nil && fd.MaybeMonth != nil {
		return oops.Wrap(&PreconditionError{Fuzzy: fd, Reason: "month is set without a year"})
	}
	if fd.MaybeMonth == nil && fd.MaybeDay != nil {
		return oops.Wrap(&PreconditionError{Fuzzy: fd, Reason: "day is set without a month"})
	}
	return nil
}

// Normalize returns the first day of the period the fuzzy date describes. A nil date with a nil
// error means nothing is known, which is read as ongoing/open-ended.
func Normalize(fd FuzzyDate) (*Date, error) {
	if err := fd.Validate(); err != nil {
		return nil, err
	}
	if fd.MaybeYear == nil {
		return nil, nil
	}

	month := 1
	if fd.MaybeMonth != nil {
		month = *fd.MaybeMonth
	}
	day := 1
	if fd.MaybeDay != nil {
		day = *fd.MaybeDay
	}

	date, err := NewDate(*fd.MaybeYear, month, day)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func MustNormalize(fd FuzzyDate) *Date {
	date, err := Normalize(fd)
	if err != nil {
		panic(err)
	}
	return date
}
