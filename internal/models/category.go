package models

// Transaction and category types share the same two values; a category can
// only be attached to transactions of its own type.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// TransferCategoryName is the global pseudo-category used to tag the two
// legs of a wallet-to-wallet transfer. Analytics exclude it from
// income/expense totals.
const (
	TransferCategoryName = "Transfer"
	TransferCategoryIcon = "repeat"
)

// Category is either global (UserID nil, visible to everyone) or owned by a
// single user. (user, name, type) is unique.
type Category struct {
	ID        int    `json:"id" db:"id"`
	UserID    *int   `json:"user_id,omitempty" db:"user_id"`
	Name      string `json:"name" db:"name"`
	Type      string `json:"type" db:"type"`
	Icon      string `json:"icon" db:"icon"`
	IsGlobal  bool   `json:"is_global"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
}

// AccessibleBy reports whether the category may be used by the given user.
func (c *Category) AccessibleBy(userID int) bool {
	return c.UserID == nil || *c.UserID == userID
}

func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
