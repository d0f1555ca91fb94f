package middleware

import (
	"context"
	"net/http"

	"fuzzydates/db/dbw"
)

// DB hands every request a pool bound to its context and logger.
func DB(rootPool *dbw.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r)
			pool := rootPool.Child(r.Context(), logger)
			next.ServeHTTP(w, withDBPool(r, pool))
		}
		return http.HandlerFunc(fn)
	}
}

type dbPoolKeyType struct{}

var dbPoolKey = &dbPoolKeyType{}

func withDBPool(r *http.Request, pool *dbw.Pool) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), dbPoolKey, pool))
	return r
}

func GetDBPool(r *http.Request) *dbw.Pool {
	return r.Context().Value(dbPoolKey).(*dbw.Pool)
}
