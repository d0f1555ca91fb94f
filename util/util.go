package util

import (
	"errors"
	"net/http"
	"strconv"

	"fuzzydates/db/dbw"

	"github.com/go-chi/chi/v5"
)

// Helps the caller of Tx to clobber the variable that's passed as parentTx, preventing accidental use
type Clobber struct{}

func Tx(parentTx dbw.Queryable, f func(*dbw.Tx, Clobber) error) error {
	tx, err := parentTx.Begin()
	if err != nil {
		return err
	}

	err = f(tx, Clobber{})
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil && !errors.Is(rollbackErr, dbw.ErrTxClosed) {
			parentTx.Logger().Error().Err(rollbackErr).Msg("Rollback error")
		}
		return err
	}

	return tx.Commit()
}

func URLParamStr(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// URLParamInt64 responds with 400 when the parameter is not an integer.
func URLParamInt64(r *http.Request, key string) int64 {
	value := chi.URLParam(r, key)
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		HttpPanic(http.StatusBadRequest, "invalid "+key+": "+value)
	}
	return result
}
