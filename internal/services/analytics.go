package services

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// Analytics serves the read-side aggregations over the ledger. Pure
// queries, no locks. Transfer legs are excluded from income/expense
// figures everywhere: moving money between wallets is not income or
// expense.
type Analytics struct {
	db *sql.DB
}

func NewAnalytics(db *sql.DB) *Analytics {
	return &Analytics{db: db}
}

type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	Net          decimal.Decimal `json:"net"`
}

type BreakdownItem struct {
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Total decimal.Decimal `json:"total"`
}

type DailyTotal struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type TrendPoint struct {
	Date  string          `json:"date"`
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
}

type PeriodSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	TransactionCount int             `json:"transaction_count"`
}

type ComparisonRow struct {
	Category     string          `json:"category"`
	CurrentTotal decimal.Decimal `json:"current_total"`
	PrevTotal    decimal.Decimal `json:"prev_total"`
}

// Summary reports lifetime income/expense totals plus the sum of all wallet
// balances. The balance is the materialized aggregate the ledger maintains,
// not a recomputation from the transaction log.
func (a *Analytics) Summary(ctx context.Context, ownerID int) (*Summary, error) {
	var income, expense decimal.Decimal
	err := a.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN t.type = 'INCOME' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN t.type = 'EXPENSE' THEN t.amount ELSE 0 END), 0) AS total_expense
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ? AND LOWER(c.name) <> 'transfer'`, ownerID).Scan(&income, &expense)
	if err != nil {
		return nil, err
	}

	var balance decimal.Decimal
	err = a.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(balance), 0) FROM wallets WHERE user_id = ?`, ownerID).Scan(&balance)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		TotalBalance: balance,
		Net:          income.Sub(expense),
	}, nil
}

func (a *Analytics) CategoryBreakdown(ctx context.Context, ownerID int, start, end, transType string) ([]BreakdownItem, error) {
	return a.breakdown(ctx, `
		SELECT c.name, c.icon, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
		  AND t.type = ?
		  AND t.transaction_date >= ?
		  AND t.transaction_date <= ?
		  AND LOWER(c.name) <> 'transfer'
		GROUP BY c.id, c.name, c.icon
		HAVING SUM(t.amount) > 0
		ORDER BY total DESC`, ownerID, transType, start, end)
}

func (a *Analytics) WalletBreakdown(ctx context.Context, ownerID int, start, end, transType string) ([]BreakdownItem, error) {
	return a.breakdown(ctx, `
		SELECT w.name, w.icon, SUM(t.amount) AS total
		FROM transactions t
		JOIN wallets w ON t.wallet_id = w.id
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
		  AND t.type = ?
		  AND t.transaction_date >= ?
		  AND t.transaction_date <= ?
		  AND LOWER(c.name) <> 'transfer'
		GROUP BY w.id, w.name, w.icon
		HAVING SUM(t.amount) > 0
		ORDER BY total DESC`, ownerID, transType, start, end)
}

func (a *Analytics) breakdown(ctx context.Context, query string, args ...any) ([]BreakdownItem, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BreakdownItem
	for rows.Next() {
		var item BreakdownItem
		if err := rows.Scan(&item.Name, &item.Icon, &item.Total); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (a *Analytics) DailyTotals(ctx context.Context, ownerID int, start, end, transType string) ([]DailyTotal, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT transaction_date, SUM(amount) AS total
		FROM transactions
		WHERE user_id = ?
		  AND type = ?
		  AND transaction_date >= ?
		  AND transaction_date <= ?
		GROUP BY transaction_date
		ORDER BY transaction_date ASC`, ownerID, transType, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var d DailyTotal
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, err
		}
		totals = append(totals, d)
	}
	return totals, rows.Err()
}

// CashFlowTrend returns per-day income and expense sums for charting.
func (a *Analytics) CashFlowTrend(ctx context.Context, ownerID int, start, end string) ([]TrendPoint, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT t.transaction_date AS day, t.type, SUM(t.amount) AS total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
		  AND t.transaction_date >= ?
		  AND t.transaction_date <= ?
		  AND LOWER(c.name) <> 'transfer'
		GROUP BY day, t.type
		ORDER BY day ASC`, ownerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Type, &p.Total); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (a *Analytics) PeriodSummary(ctx context.Context, ownerID int, start, end string) (*PeriodSummary, error) {
	var s PeriodSummary
	err := a.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN t.type = 'INCOME' AND LOWER(c.name) <> 'transfer' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN t.type = 'EXPENSE' AND LOWER(c.name) <> 'transfer' THEN t.amount ELSE 0 END), 0) AS total_expense,
			COUNT(*) AS transaction_count
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
		  AND t.transaction_date >= ?
		  AND t.transaction_date <= ?`, ownerID, start, end).
		Scan(&s.TotalIncome, &s.TotalExpense, &s.TransactionCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// MonthlyComparison compares per-category expense totals between two date
// windows, typically the current and previous month.
func (a *Analytics) MonthlyComparison(ctx context.Context, ownerID int, curStart, curEnd, prevStart, prevEnd string) ([]ComparisonRow, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT
			c.name AS category,
			COALESCE(SUM(CASE WHEN t.transaction_date >= ? AND t.transaction_date <= ? THEN t.amount ELSE 0 END), 0) AS current_total,
			COALESCE(SUM(CASE WHEN t.transaction_date >= ? AND t.transaction_date <= ? THEN t.amount ELSE 0 END), 0) AS prev_total
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
		  AND t.type = 'EXPENSE'
		  AND LOWER(c.name) <> 'transfer'
		  AND ((t.transaction_date >= ? AND t.transaction_date <= ?) OR
		       (t.transaction_date >= ? AND t.transaction_date <= ?))
		GROUP BY c.name
		HAVING current_total > 0 OR prev_total > 0
		ORDER BY current_total DESC`,
		curStart, curEnd, prevStart, prevEnd, ownerID, curStart, curEnd, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ComparisonRow
	for rows.Next() {
		var r ComparisonRow
		if err := rows.Scan(&r.Category, &r.CurrentTotal, &r.PrevTotal); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
