// Run `golangci-lint cache clean` after modifying this file.

package gorules

import (
	"github.com/quasilyte/go-ruleguard/dsl"
)

func dateParsing(m dsl.Matcher) {
	m.Match(`time.Parse($layout, $text)`).
		Where(m["layout"].Text == `fuzzydate.DateLayout` || m["layout"].Text == `DateLayout` ||
			m["layout"].Text == `"2006-01-02"` || m["layout"].Text == `time.DateOnly`).
		Where(!m.File().PkgPath.Matches(`fuzzydates/fuzzydate`)).
		Report(`parse dates with fuzzydate.ParseDate so calendar errors stay typed`)
	m.Match(`fuzzydate.Date($x)`).
		Where(!m.File().PkgPath.Matches(`fuzzydates/fuzzydate`)).
		Report(`conversions to fuzzydate.Date skip validation, use fuzzydate.NewDate or fuzzydate.ParseDate`)
}

func dbwTx(m dsl.Matcher) {
	m.Match(`dbw.Tx`).
		Where(
			!m.File().PkgPath.Matches(`fuzzydates/routes`) &&
				!m.File().PkgPath.Matches(`fuzzydates/db`) &&
				!m.File().PkgPath.Matches(`fuzzydates/middleware`) &&
				!m.File().PkgPath.Matches(`fuzzydates/util`)).
		Report(`references to dbw.Tx are only allowed in db, middleware, routes and util, use dbw.Queryable instead`)
	m.Match(`sql.Open($*_)`).
		Where(!m.File().PkgPath.Matches(`fuzzydates/db`)).
		Report(`open databases with db.Open so sqlite pragmas and the dialect are set`)
}
