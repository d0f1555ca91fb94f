package fuzzydate

import (
	"database/sql/driver"

	"fuzzydates/oops"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Field is a record field that accepts a fuzzy date payload and keeps its normalized date.
// Decoding runs Normalize before any record-level validation sees the value, so every record
// type embedding a Field shares the same conversion. MaybeDate is nil for an ongoing date.
type Field struct {
	MaybeDate *Date
}

func NewField(fd FuzzyDate) (Field, error) {
	maybeDate, err := Normalize(fd)
	if err != nil {
		return Field{}, err
	}
	return Field{MaybeDate: maybeDate}, nil
}

func DateField(date Date) Field {
	return Field{MaybeDate: &date}
}

func (f Field) IsOngoing() bool {
	return f.MaybeDate == nil
}

func (f Field) String() string {
	if f.MaybeDate == nil {
		return "ongoing"
	}
	return f.MaybeDate.String()
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var fd FuzzyDate
	if err := json.Unmarshal(data, &fd); err != nil {
		return oops.Wrapf(err, "decoding fuzzy date")
	}
	field, err := NewField(fd)
	if err != nil {
		return err
	}
	*f = field
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	if f.MaybeDate == nil {
		return []byte("null"), nil
	}
	return json.Marshal(string(*f.MaybeDate))
}

func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	var fd FuzzyDate
	if err := value.Decode(&fd); err != nil {
		return oops.Wrapf(err, "decoding fuzzy date")
	}
	field, err := NewField(fd)
	if err != nil {
		return err
	}
	*f = field
	return nil
}

func (f *Field) Scan(src any) error {
	if src == nil {
		f.MaybeDate = nil
		return nil
	}
	var date Date
	if err := date.Scan(src); err != nil {
		return err
	}
	f.MaybeDate = &date
	return nil
}

func (f Field) Value() (driver.Value, error) {
	if f.MaybeDate == nil {
		return nil, nil
	}
	return string(*f.MaybeDate), nil
}
