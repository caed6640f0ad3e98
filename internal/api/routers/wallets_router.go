package routers

import (
	"database/sql"
	"net/http"

	"kantong/internal/api/handlers/wallets"
)

func walletsRouter(db *sql.DB) *http.ServeMux {
	h := wallets.NewHandler(db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /wallets", h.List)
	mux.HandleFunc("POST /wallets", h.Create)
	mux.HandleFunc("DELETE /wallets/{id}", h.Delete)

	return mux
}
