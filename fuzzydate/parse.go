package fuzzydate

import (
	"strconv"
	"strings"

	"fuzzydates/oops"

	"github.com/dlclark/regexp2"
)

var fuzzyTextRegex *regexp2.Regexp

func init() {
	fuzzyTextRegex = regexp2.MustCompile(
		`\A(?<year>-?\d{1,4})(?:-(?<month>\d{1,2})(?:-(?<day>\d{1,2}))?)?\z`, regexp2.None,
	)
}

// Parse reads "2024", "2024-07" or "2024-07-04". An empty string, "-", "?" or "ongoing" is a
// fuzzy date with nothing known. The syntax cannot express gaps, so the result always satisfies
// Validate. Field values are not range-checked here, that is left to Normalize.
func Parse(text string) (FuzzyDate, error) {
	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(trimmed) {
	case "", "-", "?", "ongoing":
		return Unknown(), nil
	}

	match, err := fuzzyTextRegex.FindStringMatch(trimmed)
	if err != nil {
		return Unknown(), oops.Wrap(err)
	}
	if match == nil {
		return Unknown(), oops.Newf("not a fuzzy date: %q", text)
	}

	parseGroup := func(name string) (*int, error) {
		group := match.GroupByName(name)
		if group == nil || len(group.Captures) == 0 {
			return nil, nil
		}
		value, err := strconv.Atoi(group.String())
		if err != nil {
			return nil, oops.Wrap(err)
		}
		return &value, nil
	}

	maybeYear, err := parseGroup("year")
	if err != nil {
		return Unknown(), err
	}
	maybeMonth, err := parseGroup("month")
	if err != nil {
		return Unknown(), err
	}
	maybeDay, err := parseGroup("day")
	if err != nil {
		return Unknown(), err
	}

	return New(maybeYear, maybeMonth, maybeDay), nil
}
