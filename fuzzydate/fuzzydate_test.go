//go:build testing

package fuzzydate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fuzzydates/oops"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestNormalizePassing(t *testing.T) {
	type Test struct {
		Description  string
		Fuzzy        FuzzyDate
		ExpectedDate *Date
	}
	date := func(text string) *Date {
		d := Date(text)
		return &d
	}
	tests := []Test{
		{"nothing known is ongoing", Unknown(), nil},
		{"year only is first of january", Year(2024), date("2024-01-01")},
		{"year and month is first of month", YearMonth(2024, 7), date("2024-07-01")},
		{"full date", YearMonthDay(2024, 7, 4), date("2024-07-04")},
		{"leap day", YearMonthDay(2024, 2, 29), date("2024-02-29")},
		{"leap day in a 400 year", YearMonthDay(2000, 2, 29), date("2000-02-29")},
		{"last day of year", YearMonthDay(1999, 12, 31), date("1999-12-31")},
		{"three digit year is padded", YearMonthDay(999, 3, 15), date("0999-03-15")},
		{"smallest year", Year(MinYear), date("0001-01-01")},
		{"largest year", YearMonthDay(MaxYear, 12, 31), date("9999-12-31")},
	}

	for _, test := range tests {
		result, err := Normalize(test.Fuzzy)
		oops.RequireNoError(t, err, test.Description)
		require.Equal(t, test.ExpectedDate, result, test.Description)
	}
}

func TestNormalizeDefaultsMatchCalendar(t *testing.T) {
	for year := 1900; year <= 2100; year += 7 {
		result, err := Normalize(Year(year))
		oops.RequireNoError(t, err)
		require.NotNil(t, result)
		require.Equal(t, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), result.Time())

		for month := 1; month <= 12; month++ {
			result, err := Normalize(YearMonth(year, month))
			oops.RequireNoError(t, err)
			require.NotNil(t, result)
			require.Equal(t, year, result.Year())
			require.Equal(t, time.Month(month), result.Month())
			require.Equal(t, 1, result.Day())
		}
	}
}

func TestNormalizePrecondition(t *testing.T) {
	type Test struct {
		Description    string
		Fuzzy          FuzzyDate
		ExpectedReason string
	}
	tests := []Test{
		{"month and day without year", New(nil, intPtr(7), intPtr(4)), "month is set without a year"},
		{"month without year", New(nil, intPtr(7), nil), "month is set without a year"},
		{"day without year", New(nil, nil, intPtr(4)), "day is set without a month"},
		{"day without month", New(intPtr(2023), nil, intPtr(4)), "day is set without a month"},
	}

	for _, test := range tests {
		result, err := Normalize(test.Fuzzy)
		require.Nil(t, result, test.Description)
		require.ErrorIs(t, err, ErrPrecondition, test.Description)
		require.NotErrorIs(t, err, ErrCalendar, test.Description)

		var preconditionErr *PreconditionError
		require.True(t, errors.As(err, &preconditionErr), test.Description)
		require.Equal(t, test.ExpectedReason, preconditionErr.Reason, test.Description)
		require.Equal(t, test.Fuzzy, preconditionErr.Fuzzy, test.Description)
	}
}

func TestNormalizeCalendar(t *testing.T) {
	type Test struct {
		Description string
		Fuzzy       FuzzyDate
	}
	tests := []Test{
		{"february 30", YearMonthDay(2023, 2, 30)},
		{"february 29 in a common year", YearMonthDay(2023, 2, 29)},
		{"february 29 in a century year", YearMonthDay(1900, 2, 29)},
		{"april 31", YearMonthDay(2024, 4, 31)},
		{"month 13", YearMonthDay(2024, 13, 1)},
		{"month 13 without day", YearMonth(2024, 13)},
		{"month 0", YearMonth(2024, 0)},
		{"day 32", YearMonthDay(2024, 1, 32)},
		{"day 0", YearMonthDay(2024, 1, 0)},
		{"negative month", YearMonth(2024, -1)},
		{"year 0", Year(0)},
		{"five digit year", Year(10000)},
		{"negative year", Year(-44)},
	}

	for _, test := range tests {
		result, err := Normalize(test.Fuzzy)
		require.Nil(t, result, test.Description)
		require.ErrorIs(t, err, ErrCalendar, test.Description)
		require.NotErrorIs(t, err, ErrPrecondition, test.Description)

		var calendarErr *CalendarError
		require.True(t, errors.As(err, &calendarErr), test.Description)
		require.Error(t, calendarErr.Inner, test.Description)
	}
}

func TestNormalizeCalendarWrapsParseError(t *testing.T) {
	_, err := Normalize(YearMonthDay(2023, 2, 30))

	var parseErr *time.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "2023-02-30", parseErr.Value)
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []FuzzyDate{Unknown(), Year(1987), YearMonth(2010, 10), YearMonthDay(2024, 7, 4)}
	for _, input := range inputs {
		first, err := Normalize(input)
		oops.RequireNoError(t, err)

		var wg sync.WaitGroup
		results := make([]*Date, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = MustNormalize(input)
			}(i)
		}
		wg.Wait()

		for _, result := range results {
			require.Equal(t, first, result, input.String())
		}
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	input := YearMonth(2024, 7)
	_, err := Normalize(input)
	oops.RequireNoError(t, err)
	require.Nil(t, input.MaybeDay)
	require.Equal(t, 7, *input.MaybeMonth)
}

func TestPrecisionAndString(t *testing.T) {
	type Test struct {
		Fuzzy             FuzzyDate
		ExpectedPrecision Precision
		ExpectedString    string
	}
	tests := []Test{
		{Unknown(), PrecisionNone, "????-??-??"},
		{Year(2024), PrecisionYear, "2024-??-??"},
		{YearMonth(2024, 7), PrecisionMonth, "2024-07-??"},
		{YearMonthDay(2024, 7, 4), PrecisionDay, "2024-07-04"},
		{New(nil, intPtr(7), intPtr(4)), PrecisionDay, "????-07-04"},
	}

	for _, test := range tests {
		require.Equal(t, test.ExpectedPrecision, test.Fuzzy.Precision(), test.ExpectedString)
		require.Equal(t, test.ExpectedString, test.Fuzzy.String())
	}
	require.Equal(t, "month", PrecisionMonth.String())
}
