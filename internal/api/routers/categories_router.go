package routers

import (
	"database/sql"
	"net/http"

	"kantong/internal/api/handlers/categories"
)

func categoriesRouter(db *sql.DB) *http.ServeMux {
	h := categories.NewHandler(db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /categories", h.List)
	mux.HandleFunc("POST /categories", h.Create)
	mux.HandleFunc("DELETE /categories/{id}", h.Delete)

	return mux
}
