package routes

import (
	"errors"
	"net/http"

	"fuzzydates/db/dbw"
	"fuzzydates/models"
	"fuzzydates/routes/rutil"
	"fuzzydates/util"
)

func Records_Validate(w http.ResponseWriter, r *http.Request) {
	body := rutil.MustReadBody(w, r)
	record, err := models.PlainRecord_FromJson(body)
	if err != nil {
		util.HttpPanicErr(http.StatusBadRequest, err)
	}

	rutil.MustWriteJson(w, http.StatusOK, record)
}

func Records_Create(w http.ResponseWriter, r *http.Request) {
	body := rutil.MustReadBody(w, r)
	record, err := models.TableRecord_FromJson(body)
	if err != nil {
		util.HttpPanicErr(http.StatusBadRequest, err)
	}

	pool := rutil.DBPool(r)
	var stored *models.TableRecord
	err = util.Tx(pool, func(tx *dbw.Tx, pool util.Clobber) error {
		if err := models.TableRecord_Create(tx, record); err != nil {
			return err
		}
		var err error
		stored, err = models.TableRecord_Get(tx, record.Id)
		return err
	})
	mustHandleRecordError(err)

	rutil.Logger(r).Info().Int64("record_id", int64(stored.Id)).Msg("Record created")
	rutil.MustWriteJson(w, http.StatusCreated, stored)
}

func Records_List(w http.ResponseWriter, r *http.Request) {
	pool := rutil.DBPool(r)
	records, err := models.TableRecord_List(pool)
	mustHandleRecordError(err)
	if records == nil {
		records = []models.TableRecord{}
	}

	rutil.MustWriteJson(w, http.StatusOK, records)
}

func Records_Get(w http.ResponseWriter, r *http.Request) {
	id := models.RecordId(util.URLParamInt64(r, "id"))
	pool := rutil.DBPool(r)
	record, err := models.TableRecord_Get(pool, id)
	mustHandleRecordError(err)

	rutil.MustWriteJson(w, http.StatusOK, record)
}

func Records_Delete(w http.ResponseWriter, r *http.Request) {
	id := models.RecordId(util.URLParamInt64(r, "id"))
	pool := rutil.DBPool(r)
	err := models.TableRecord_Delete(pool, id)
	mustHandleRecordError(err)

	w.WriteHeader(http.StatusNoContent)
}

func mustHandleRecordError(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, models.ErrRecordExists):
		util.HttpPanicErr(http.StatusConflict, err)
	case errors.Is(err, models.ErrRecordNotFound):
		util.HttpPanicErr(http.StatusNotFound, err)
	default:
		panic(err)
	}
}
