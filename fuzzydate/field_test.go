//go:build testing

package fuzzydate

import (
	"testing"

	"fuzzydates/oops"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFieldUnmarshalJSON(t *testing.T) {
	type Test struct {
		Description    string
		Payload        string
		ExpectedString string
	}
	tests := []Test{
		{"full date", `{"year": 2024, "month": 7, "day": 4}`, "2024-07-04"},
		{"year and month", `{"year": 2024, "month": 7, "day": null}`, "2024-07-01"},
		{"year only", `{"year": 2024, "month": null, "day": null}`, "2024-01-01"},
		{"missing keys are unknown", `{"year": 1987}`, "1987-01-01"},
		{"nothing known", `{"year": null, "month": null, "day": null}`, "ongoing"},
		{"null payload", `null`, "ongoing"},
	}

	for _, test := range tests {
		var field Field
		err := json.Unmarshal([]byte(test.Payload), &field)
		oops.RequireNoError(t, err, test.Description)
		require.Equal(t, test.ExpectedString, field.String(), test.Description)
	}
}

func TestFieldUnmarshalJSONFailing(t *testing.T) {
	var field Field
	err := json.Unmarshal([]byte(`{"year": null, "month": 7, "day": 4}`), &field)
	require.ErrorIs(t, err, ErrPrecondition)

	err = json.Unmarshal([]byte(`{"year": 2023, "month": 2, "day": 30}`), &field)
	require.ErrorIs(t, err, ErrCalendar)

	err = json.Unmarshal([]byte(`"2024-07-04"`), &field)
	require.Error(t, err)
}

func TestFieldInsideRecord(t *testing.T) {
	type Record struct {
		Id     int64 `json:"id"`
		MyDate Field `json:"mydate"`
	}

	var record Record
	err := json.Unmarshal([]byte(`{"id": 3, "mydate": {"year": 2024, "month": 7, "day": 4}}`), &record)
	oops.RequireNoError(t, err)
	require.Equal(t, int64(3), record.Id)
	require.Equal(t, DateField(MustDate(2024, 7, 4)), record.MyDate)

	encoded, err := json.Marshal(record)
	oops.RequireNoError(t, err)
	require.JSONEq(t, `{"id": 3, "mydate": "2024-07-04"}`, string(encoded))

	encoded, err = json.Marshal(Record{Id: 4, MyDate: Field{MaybeDate: nil}})
	oops.RequireNoError(t, err)
	require.JSONEq(t, `{"id": 4, "mydate": null}`, string(encoded))
}

func TestFieldUnmarshalYAML(t *testing.T) {
	type Record struct {
		MyDate Field `yaml:"mydate"`
	}

	var record Record
	err := yaml.Unmarshal([]byte("mydate:\n  year: 2012\n  month: 2\n"), &record)
	oops.RequireNoError(t, err)
	require.Equal(t, "2012-02-01", record.MyDate.String())

	err = yaml.Unmarshal([]byte("mydate:\n  month: 2\n"), &record)
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestFieldSqlRoundTrip(t *testing.T) {
	field := DateField(MustDate(2024, 7, 4))
	value, err := field.Value()
	oops.RequireNoError(t, err)
	require.Equal(t, "2024-07-04", value)

	var scanned Field
	oops.RequireNoError(t, scanned.Scan(value))
	require.Equal(t, field, scanned)

	oops.RequireNoError(t, scanned.Scan(nil))
	require.True(t, scanned.IsOngoing())
	value, err = scanned.Value()
	oops.RequireNoError(t, err)
	require.Nil(t, value)
}
