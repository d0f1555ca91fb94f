package routes

import (
	"net/http"

	"fuzzydates/db/dbw"
	frmiddleware "fuzzydates/middleware"
	"fuzzydates/routes/rutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(rootPool *dbw.Pool) http.Handler {
	r := chi.NewRouter()
	r.Use(frmiddleware.Logger)
	r.Use(middleware.Compress(5))
	r.Use(frmiddleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(frmiddleware.DB(rootPool))

	r.Post("/normalize", FuzzyDates_Normalize)
	r.Post("/records/validate", Records_Validate)
	r.Post("/records", Records_Create)
	r.Get("/records", Records_List)
	r.Get("/records/{id}", Records_Get)
	r.Delete("/records/{id}", Records_Delete)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rutil.MustWriteJson(w, http.StatusNotFound, map[string]any{"error": "Not found"})
	})

	return r
}
