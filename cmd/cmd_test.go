//go:build testing

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fuzzydates/fuzzydate"
	"fuzzydates/oops"

	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	err := RunDemo(&out)
	oops.RequireNoError(t, err)
	require.Equal(
		t,
		"PlainRecord(id=0, mydate=2024-07-04)\nTableRecord(id=0, mydate=2024-07-04)\n",
		out.String(),
	)
}

func TestNormalizeAll(t *testing.T) {
	var inputs []normalizeInput
	for _, text := range []string{"2024-07-04", "1999", "-", "2023-02-30", "2020-02"} {
		fuzzy, err := fuzzydate.Parse(text)
		oops.RequireNoError(t, err)
		inputs = append(inputs, normalizeInput{Key: text, Fuzzy: fuzzy})
	}

	results, failed := normalizeAll(inputs)
	require.Equal(t, 1, failed)

	var keys []string
	for pair := results.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	require.Equal(t, []string{"2024-07-04", "1999", "-", "2023-02-30", "2020-02"}, keys)

	yearOnly, _ := results.Get("1999")
	require.Equal(t, fuzzydate.MustDate(1999, 1, 1), *yearOnly.Date)
	ongoing, _ := results.Get("-")
	require.True(t, ongoing.Ongoing)
	require.Nil(t, ongoing.Date)
	invalid, _ := results.Get("2023-02-30")
	require.NotEmpty(t, invalid.Error)
	require.Nil(t, invalid.Date)

	var out bytes.Buffer
	err := writeResults(&out, results)
	oops.RequireNoError(t, err)
	text := out.String()
	require.Less(t, strings.Index(text, `"2024-07-04"`), strings.Index(text, `"1999"`))
	require.Less(t, strings.Index(text, `"1999"`), strings.Index(text, `"2020-02"`))
	require.Contains(t, text, `"2020-02-01"`)
}

func TestReadFuzzyFile(t *testing.T) {
	type Test struct {
		Description string
		Content     string
		Expected    []string
	}
	tests := []Test{
		{
			Description: "yaml",
			Content:     "- {year: 2024, month: 7, day: 4}\n- year: 1999\n- {year: null}\n",
			Expected:    []string{"2024-07-04", "1999-??-??", "????-??-??"},
		},
		{
			Description: "json",
			Content:     `[{"year": 2024, "month": 7}, {"month": 7, "day": 4}]`,
			Expected:    []string{"2024-07-??", "????-07-04"},
		},
	}

	for _, test := range tests {
		filename := filepath.Join(t.TempDir(), "dates.yml")
		require.NoError(t, os.WriteFile(filename, []byte(test.Content), 0644))

		inputs, err := readFuzzyFile(filename)
		oops.RequireNoError(t, err, test.Description)
		var keys []string
		for _, input := range inputs {
			keys = append(keys, input.Key)
		}
		require.Equal(t, test.Expected, keys, test.Description)
	}
}

func TestGenerateMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 10, 20, 12, 30, 45, 0, time.UTC)

	filename, err := generateMigration(dir, "AddRecordNotes", now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20241020123045_AddRecordNotes.go"), filename)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Contains(t, string(content), "type AddRecordNotes struct{}")
	require.Contains(t, string(content), `return "20241020123045"`)

	_, err = generateMigration(dir, "lowercase", now)
	require.Error(t, err)
	_, err = generateMigration(dir, "not-an-identifier", now)
	require.Error(t, err)
}

func TestNormalizeCommandReportsFailures(t *testing.T) {
	var out, errOut bytes.Buffer
	Normalize.SetOut(&out)
	Normalize.SetErr(&errOut)
	Normalize.SetArgs([]string{"2024-07", "2023-02-30"})
	t.Cleanup(func() {
		Normalize.SetArgs(nil)
	})

	err := Normalize.Execute()
	require.EqualError(t, err, "1 of 2 fuzzy dates failed to normalize")
	require.Contains(t, out.String(), `"2024-07-01"`)
}
