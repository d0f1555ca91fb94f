package cmd

import (
	"fmt"
	"io"

	"fuzzydates/models"
)

func demoPayload() map[string]any {
	return map[string]any{
		"id": 0,
		"mydate": map[string]any{
			"year":  2024,
			"month": 7,
			"day":   4,
		},
	}
}

// RunDemo builds both record shapes from the same payload and prints them.
func RunDemo(w io.Writer) error {
	plain, err := models.PlainRecord_FromMap(demoPayload())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, plain); err != nil {
		return err
	}

	table, err := models.TableRecord_FromMap(demoPayload())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}
