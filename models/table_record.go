package models

import (
	"database/sql"
	"errors"

	"fuzzydates/db/dbw"
	"fuzzydates/oops"
	"fuzzydates/validation"

	"github.com/Masterminds/squirrel"
)

var ErrRecordExists = errors.New("record already exists")
var ErrRecordNotFound = errors.New("record not found")

const tableRecordsTable = "table_records"

// TableRecord_Create validates the record again before inserting it, so a hand-built record can't
// skip the pipeline.
func TableRecord_Create(tx dbw.Queryable, record *TableRecord) error {
	if err := validation.Struct(record); err != nil {
		return err
	}

	query, args, err := tx.Builder().
		Insert(tableRecordsTable).
		Columns("id", "mydate").
		Values(record.Id, record.MyDate).
		ToSql()
	if err != nil {
		return oops.Wrap(err)
	}

	_, err = tx.Exec(query, args...)
	if dbw.IsUniqueViolation(err) {
		return oops.Wrapf(ErrRecordExists, "id %d", record.Id)
	} else if err != nil {
		return oops.Wrap(err)
	}

	return nil
}

func TableRecord_Get(tx dbw.Queryable, id RecordId) (*TableRecord, error) {
	query, args, err := tx.Builder().
		Select("id", "mydate").
		From(tableRecordsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, oops.Wrap(err)
	}

	row := tx.QueryRow(query, args...)
	var record TableRecord
	err = row.Scan(&record.Id, &record.MyDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.Wrapf(ErrRecordNotFound, "id %d", id)
	} else if err != nil {
		return nil, oops.Wrap(err)
	}

	return &record, nil
}

func TableRecord_List(tx dbw.Queryable) ([]TableRecord, error) {
	query, args, err := tx.Builder().
		Select("id", "mydate").
		From(tableRecordsTable).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, oops.Wrap(err)
	}

	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	var records []TableRecord
	for rows.Next() {
		var record TableRecord
		if err := rows.Scan(&record.Id, &record.MyDate); err != nil {
			return nil, oops.Wrap(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}

	return records, nil
}

func TableRecord_Delete(tx dbw.Queryable, id RecordId) error {
	query, args, err := tx.Builder().
		Delete(tableRecordsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return oops.Wrap(err)
	}

	result, err := tx.Exec(query, args...)
	if err != nil {
		return oops.Wrap(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return oops.Wrap(err)
	}
	if rowsAffected == 0 {
		return oops.Wrapf(ErrRecordNotFound, "id %d", id)
	}

	return nil
}
