package models

import "github.com/shopspring/decimal"

// Transaction is immutable once created; deleting it reverses its effect on
// the wallet balance. The two legs of a transfer share a TransferGroupID.
type Transaction struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	WalletID        int             `json:"wallet_id" db:"wallet_id"`
	CategoryID      int             `json:"category_id" db:"category_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Type            string          `json:"type" db:"type"`
	TransactionDate string          `json:"transaction_date" db:"transaction_date"`
	Description     string          `json:"description,omitempty" db:"description"`
	TransferGroupID string          `json:"transfer_group_id,omitempty" db:"transfer_group_id"`
	CreatedAt       string          `json:"created_at,omitempty" db:"created_at"`
	CategoryName    string          `json:"category_name,omitempty"`
	WalletName      string          `json:"wallet_name,omitempty"`
}

// SignedAmount is the transaction's effect on its wallet balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
