package models

import (
	"fmt"

	"fuzzydates/fuzzydate"
	"fuzzydates/validation"
)

type RecordId int64

var recordKeys = []string{"id", "mydate"}

// PlainRecord is validated on construction and never stored.
type PlainRecord struct {
	Id     RecordId        `json:"id" yaml:"id"`
	MyDate fuzzydate.Field `json:"mydate" yaml:"mydate" validate:"required,calendar_date"`
}

func (r *PlainRecord) RequiredKeys() []string {
	return recordKeys
}

func (r PlainRecord) String() string {
	return fmt.Sprintf("PlainRecord(id=%d, mydate=%s)", r.Id, r.MyDate)
}

func PlainRecord_New(id RecordId, fuzzy fuzzydate.FuzzyDate) (*PlainRecord, error) {
	myDate, err := fuzzydate.NewField(fuzzy)
	if err != nil {
		return nil, err
	}
	record := &PlainRecord{
		Id:     id,
		MyDate: myDate,
	}
	if err := validation.Struct(record); err != nil {
		return nil, err
	}
	return record, nil
}

func PlainRecord_FromJson(data []byte) (*PlainRecord, error) {
	var record PlainRecord
	if err := validation.DecodeJSON(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func PlainRecord_FromMap(payload map[string]any) (*PlainRecord, error) {
	var record PlainRecord
	if err := validation.DecodeMap(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// TableRecord is stored in table_records, with Id as the primary key.
type TableRecord struct {
	Id     RecordId        `json:"id" yaml:"id"`
	MyDate fuzzydate.Field `json:"mydate" yaml:"mydate" validate:"required,calendar_date"`
}

func (r *TableRecord) RequiredKeys() []string {
	return recordKeys
}

func (r TableRecord) String() string {
	return fmt.Sprintf("TableRecord(id=%d, mydate=%s)", r.Id, r.MyDate)
}

func TableRecord_New(id RecordId, fuzzy fuzzydate.FuzzyDate) (*TableRecord, error) {
	myDate, err := fuzzydate.NewField(fuzzy)
	if err != nil {
		return nil, err
	}
	record := &TableRecord{
		Id:     id,
		MyDate: myDate,
	}
	if err := validation.Struct(record); err != nil {
		return nil, err
	}
	return record, nil
}

func TableRecord_FromJson(data []byte) (*TableRecord, error) {
	var record TableRecord
	if err := validation.DecodeJSON(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func TableRecord_FromMap(payload map[string]any) (*TableRecord, error) {
	var record TableRecord
	if err := validation.DecodeMap(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
