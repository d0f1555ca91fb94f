//go:build testing

package models

import (
	"testing"

	"fuzzydates/db"
	"fuzzydates/fuzzydate"
	"fuzzydates/oops"

	"github.com/stretchr/testify/require"
)

func TestTableRecordCreateGet(t *testing.T) {
	pool := db.OpenTest(t)

	record, err := TableRecord_FromMap(samplePayload)
	oops.RequireNoError(t, err)
	oops.RequireNoError(t, TableRecord_Create(pool, record))

	stored, err := TableRecord_Get(pool, 0)
	oops.RequireNoError(t, err)
	require.Equal(t, record, stored)
	require.Equal(t, "2024-07-04", stored.MyDate.String())
}

func TestTableRecordDuplicateId(t *testing.T) {
	pool := db.OpenTest(t)

	first, err := TableRecord_New(7, fuzzydate.YearMonthDay(2024, 7, 4))
	oops.RequireNoError(t, err)
	oops.RequireNoError(t, TableRecord_Create(pool, first))

	second, err := TableRecord_New(7, fuzzydate.Year(1990))
	oops.RequireNoError(t, err)
	err = TableRecord_Create(pool, second)
	require.ErrorIs(t, err, ErrRecordExists)

	stored, err := TableRecord_Get(pool, 7)
	oops.RequireNoError(t, err)
	require.Equal(t, first.MyDate, stored.MyDate)
}

func TestTableRecordCreateRevalidates(t *testing.T) {
	pool := db.OpenTest(t)

	err := TableRecord_Create(pool, &TableRecord{Id: 1, MyDate: fuzzydate.Field{MaybeDate: nil}})
	require.Error(t, err)

	records, err := TableRecord_List(pool)
	oops.RequireNoError(t, err)
	require.Empty(t, records)
}

func TestTableRecordListDelete(t *testing.T) {
	pool := db.OpenTest(t)

	inputs := []fuzzydate.FuzzyDate{
		fuzzydate.YearMonthDay(2024, 2, 29),
		fuzzydate.Year(1987),
		fuzzydate.YearMonth(2001, 9),
	}
	for i := len(inputs) - 1; i >= 0; i-- {
		record, err := TableRecord_New(RecordId(i+1), inputs[i])
		oops.RequireNoError(t, err)
		oops.RequireNoError(t, TableRecord_Create(pool, record))
	}

	records, err := TableRecord_List(pool)
	oops.RequireNoError(t, err)
	var texts []string
	for _, record := range records {
		texts = append(texts, record.String())
	}
	require.Equal(t, []string{
		"TableRecord(id=1, mydate=2024-02-29)",
		"TableRecord(id=2, mydate=1987-01-01)",
		"TableRecord(id=3, mydate=2001-09-01)",
	}, texts)

	oops.RequireNoError(t, TableRecord_Delete(pool, 2))
	_, err = TableRecord_Get(pool, 2)
	require.ErrorIs(t, err, ErrRecordNotFound)
	require.ErrorIs(t, TableRecord_Delete(pool, 2), ErrRecordNotFound)

	records, err = TableRecord_List(pool)
	oops.RequireNoError(t, err)
	require.Len(t, records, 2)
}

func TestTableRecordInTx(t *testing.T) {
	pool := db.OpenTest(t)

	tx := pool.MustBegin()
	record, err := TableRecord_New(9, fuzzydate.YearMonthDay(2020, 1, 31))
	oops.RequireNoError(t, err)
	oops.RequireNoError(t, TableRecord_Create(tx, record))
	oops.RequireNoError(t, tx.Rollback())

	_, err = TableRecord_Get(pool, 9)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTableRecordNegativeId(t *testing.T) {
	pool := db.OpenTest(t)

	record, err := TableRecord_New(-1, fuzzydate.YearMonth(2024, 7))
	oops.RequireNoError(t, err)
	oops.RequireNoError(t, TableRecord_Create(pool, record))

	stored, err := TableRecord_Get(pool, -1)
	oops.RequireNoError(t, err)
	require.Equal(t, "2024-07-01", stored.MyDate.String())
}
