package routers

import (
	"database/sql"
	"net/http"

	"kantong/internal/api/handlers/auth"
)

func usersRouter(db *sql.DB) *http.ServeMux {
	h := auth.NewHandler(db)

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/register", h.Register)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/refresh", h.Refresh)
	mux.HandleFunc("/auth/logout", h.Logout)

	return mux
}
