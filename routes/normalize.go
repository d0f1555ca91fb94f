package routes

import (
	"net/http"

	"fuzzydates/fuzzydate"
	"fuzzydates/routes/rutil"
	"fuzzydates/util"

	"github.com/goccy/go-json"
)

type normalizeResult struct {
	Input     string          `json:"input"`
	Precision string          `json:"precision"`
	Date      *fuzzydate.Date `json:"date"`
	Ongoing   bool            `json:"ongoing"`
}

func FuzzyDates_Normalize(w http.ResponseWriter, r *http.Request) {
	body := rutil.MustReadBody(w, r)
	var fuzzy fuzzydate.FuzzyDate
	if err := json.Unmarshal(body, &fuzzy); err != nil {
		util.HttpPanicErr(http.StatusBadRequest, err)
	}

	date, err := fuzzydate.Normalize(fuzzy)
	if err != nil {
		util.HttpPanicErr(http.StatusBadRequest, err)
	}

	rutil.MustWriteJson(w, http.StatusOK, normalizeResult{
		Input:     fuzzy.String(),
		Precision: fuzzy.Precision().String(),
		Date:      date,
		Ongoing:   date == nil,
	})
}
