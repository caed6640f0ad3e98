package routers

import (
	"database/sql"
	"net/http"

	"kantong/internal/services"
)

func MainRouter(db *sql.DB, ledger *services.Ledger, analytics *services.Analytics) *http.ServeMux {
	mux := http.NewServeMux()

	uRouter := usersRouter(db)
	mux.Handle("/auth/", uRouter)

	wRouter := walletsRouter(db)
	mux.Handle("/wallets", wRouter)
	mux.Handle("/wallets/", wRouter)

	cRouter := categoriesRouter(db)
	mux.Handle("/categories", cRouter)
	mux.Handle("/categories/", cRouter)

	tRouter := transactionsRouter(db, ledger, analytics)
	mux.Handle("/transactions", tRouter)
	mux.Handle("/transactions/", tRouter)

	aRouter := analyticsRouter(analytics)
	mux.Handle("/analytics/", aRouter)

	return mux
}
