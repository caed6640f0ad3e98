package models

import "github.com/shopspring/decimal"

type Wallet struct {
	ID        int             `json:"id" db:"id"`
	UserID    int             `json:"user_id" db:"user_id"`
	Name      string          `json:"name" db:"name"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Icon      string          `json:"icon" db:"icon"`
	CreatedAt string          `json:"created_at,omitempty" db:"created_at"`
}
