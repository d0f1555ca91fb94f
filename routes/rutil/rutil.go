package rutil

import (
	"io"
	"net/http"

	"fuzzydates/db/dbw"
	"fuzzydates/log"
	"fuzzydates/middleware"
	"fuzzydates/util"

	"github.com/goccy/go-json"
)

// This file wraps calls to the middleware package so that the routes don't have to reference it

func DBPool(r *http.Request) *dbw.Pool {
	return middleware.GetDBPool(r)
}

func Logger(r *http.Request) log.Logger {
	return middleware.GetLogger(r)
}

const maxBodyBytes = 1 << 20

func MustReadBody(w http.ResponseWriter, r *http.Request) []byte {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		util.HttpPanicErr(http.StatusBadRequest, err)
	}
	return body
}

func MustWriteJson(w http.ResponseWriter, statusCode int, data any) {
	bytes, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err = w.Write(bytes)
	if err != nil {
		panic(err)
	}
}
