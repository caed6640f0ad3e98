package routers

import (
	"net/http"

	ah "kantong/internal/api/handlers/analytics"
	"kantong/internal/services"
)

func analyticsRouter(analytics *services.Analytics) *http.ServeMux {
	h := ah.NewHandler(analytics)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /analytics/category-breakdown", h.CategoryBreakdown)
	mux.HandleFunc("GET /analytics/wallet-breakdown", h.WalletBreakdown)
	mux.HandleFunc("GET /analytics/daily-totals", h.DailyTotals)
	mux.HandleFunc("GET /analytics/cash-flow", h.CashFlow)
	mux.HandleFunc("GET /analytics/monthly-comparison", h.MonthlyComparison)

	return mux
}
