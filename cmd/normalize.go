package cmd

import (
	"fmt"
	"io"
	"os"

	"fuzzydates/fuzzydate"
	"fuzzydates/oops"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

var Normalize *cobra.Command

func init() {
	var filename string
	Normalize = &cobra.Command{
		Use:   "normalize [YYYY[-MM[-DD]] | -]...",
		Short: "Normalize fuzzy dates to the first day of their period",
		RunE: func(cmd *cobra.Command, args []string) error {
			var inputs []normalizeInput
			for _, arg := range args {
				fuzzy, err := fuzzydate.Parse(arg)
				if err != nil {
					return err
				}
				inputs = append(inputs, normalizeInput{Key: arg, Fuzzy: fuzzy})
			}
			if filename != "" {
				fileInputs, err := readFuzzyFile(filename)
				if err != nil {
					return err
				}
				inputs = append(inputs, fileInputs...)
			}
			if len(inputs) == 0 {
				return oops.New("Nothing to normalize, pass dates as arguments or --file")
			}

			results, failed := normalizeAll(inputs)
			if err := writeResults(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if failed > 0 {
				cmd.SilenceUsage = true
				return oops.Newf("%d of %d fuzzy dates failed to normalize", failed, len(inputs))
			}
			return nil
		},
	}
	Normalize.Flags().StringVarP(
		&filename, "file", "f", "", "YAML or JSON list of {year, month, day} objects",
	)
}

type normalizeInput struct {
	Key   string
	Fuzzy fuzzydate.FuzzyDate
}

type normalizeOutput struct {
	Date    *fuzzydate.Date `json:"date"`
	Ongoing bool            `json:"ongoing"`
	Error   string          `json:"error,omitempty"`
}

// JSON is a subset of YAML so one decoder reads both.
func readFuzzyFile(filename string) ([]normalizeInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	var fuzzies []fuzzydate.FuzzyDate
	if err := yaml.Unmarshal(data, &fuzzies); err != nil {
		return nil, oops.Wrapf(err, "%s", filename)
	}

	inputs := make([]normalizeInput, 0, len(fuzzies))
	for _, fuzzy := range fuzzies {
		inputs = append(inputs, normalizeInput{Key: fuzzy.String(), Fuzzy: fuzzy})
	}
	return inputs, nil
}

// Results keep the input order. A repeated key keeps its first position.
func normalizeAll(
	inputs []normalizeInput,
) (results *orderedmap.OrderedMap[string, normalizeOutput], failed int) {
	results = orderedmap.New[string, normalizeOutput]()
	for _, input := range inputs {
		date, err := fuzzydate.Normalize(input.Fuzzy)
		var output normalizeOutput
		if err != nil {
			output.Error = err.Error()
			failed++
		} else {
			output.Date = date
			output.Ongoing = date == nil
		}
		results.Set(input.Key, output)
	}
	return results, failed
}

func writeResults(w io.Writer, results *orderedmap.OrderedMap[string, normalizeOutput]) error {
	bytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return oops.Wrap(err)
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return oops.Wrap(err)
}
