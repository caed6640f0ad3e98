package routers

import (
	"database/sql"
	"net/http"

	"kantong/internal/api/handlers/transactions"
	"kantong/internal/services"
)

func transactionsRouter(db *sql.DB, ledger *services.Ledger, analytics *services.Analytics) *http.ServeMux {
	h := transactions.NewHandler(ledger, analytics, db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /transactions", h.List)
	mux.HandleFunc("POST /transactions", h.Create)
	mux.HandleFunc("GET /transactions/summary", h.Summary)
	mux.HandleFunc("POST /transactions/transfer", h.Transfer)
	mux.HandleFunc("DELETE /transactions/{id}", h.Delete)

	return mux
}
