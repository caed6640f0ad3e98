package analytics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"kantong/internal/api/handlers"
	"kantong/internal/models"
	"kantong/internal/services"
	"kantong/pkg/utils"
)

type Handler struct {
	Analytics *services.Analytics
}

func NewHandler(analytics *services.Analytics) *Handler {
	return &Handler{Analytics: analytics}
}

// transType defaults to EXPENSE, matching the dashboard's primary view.
func transType(r *http.Request) string {
	t := strings.ToUpper(r.URL.Query().Get("type"))
	if !models.ValidTransactionType(t) {
		return models.TypeExpense
	}
	return t
}

func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	h.breakdown(w, r, h.Analytics.CategoryBreakdown)
}

func (h *Handler) WalletBreakdown(w http.ResponseWriter, r *http.Request) {
	h.breakdown(w, r, h.Analytics.WalletBreakdown)
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context, ownerID int, start, end, transType string) ([]services.BreakdownItem, error)) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, err := handlers.ParseDateRange(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := fetch(ctx, userID, start, end, transType(r))
	if err != nil {
		utils.Logger.Errorf("error fetching breakdown: %v", err)
		utils.WriteError(w, "error fetching breakdown", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []services.BreakdownItem{}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   items,
	})
}

func (h *Handler) DailyTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, err := handlers.ParseDateRange(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	totals, err := h.Analytics.DailyTotals(ctx, userID, start, end, transType(r))
	if err != nil {
		utils.Logger.Errorf("error fetching daily totals: %v", err)
		utils.WriteError(w, "error fetching daily totals", http.StatusInternalServerError)
		return
	}
	if totals == nil {
		totals = []services.DailyTotal{}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   totals,
	})
}

func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, err := handlers.ParseDateRange(r)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	trend, err := h.Analytics.CashFlowTrend(ctx, userID, start, end)
	if err != nil {
		utils.Logger.Errorf("error fetching cash flow trend: %v", err)
		utils.WriteError(w, "error fetching cash flow trend", http.StatusInternalServerError)
		return
	}
	if trend == nil {
		trend = []services.TrendPoint{}
	}

	summary, err := h.Analytics.PeriodSummary(ctx, userID, start, end)
	if err != nil {
		utils.Logger.Errorf("error fetching period summary: %v", err)
		utils.WriteError(w, "error fetching cash flow trend", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"summary": summary,
		"data":    trend,
	})
}

// MonthlyComparison compares this month's per-category expenses against the
// previous month. month query param: YYYY-MM, defaults to the current month.
func (h *Handler) MonthlyComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := handlers.UserID(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	month := r.URL.Query().Get("month")
	cur, err := time.Parse("2006-01", month)
	if month == "" {
		cur = time.Now()
		err = nil
	}
	if err != nil {
		utils.WriteError(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}

	curStart := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC)
	curEnd := curStart.AddDate(0, 1, -1)
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.AddDate(0, 0, -1)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	const layout = "2006-01-02"
	rows, err := h.Analytics.MonthlyComparison(ctx, userID,
		curStart.Format(layout), curEnd.Format(layout),
		prevStart.Format(layout), prevEnd.Format(layout))
	if err != nil {
		utils.Logger.Errorf("error fetching monthly comparison: %v", err)
		utils.WriteError(w, "error fetching monthly comparison", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []services.ComparisonRow{}
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   rows,
	})
}
