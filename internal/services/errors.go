package services

import "errors"

// Ledger failure taxonomy. Every one of these aborts the whole unit of work;
// no partial balance update survives. Handlers map them onto HTTP statuses.
var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrSourceWalletNotFound  = errors.New("source wallet not found")
	ErrDestWalletNotFound    = errors.New("destination wallet not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryNotAccessible = errors.New("category not accessible")
	ErrCategoryTypeMismatch  = errors.New("category type does not match transaction type")
	ErrInsufficientFunds     = errors.New("insufficient balance in wallet")
	ErrSameWalletTransfer    = errors.New("source and destination wallets must be different")
	ErrInvalidAmount         = errors.New("amount must be greater than 0 with at most 2 decimal places")
	ErrInvalidType           = errors.New("type must be INCOME or EXPENSE")
	ErrInvalidDescription    = errors.New("description must be at most 500 characters and contain no HTML")
	ErrInvalidDate           = errors.New("transaction date must be YYYY-MM-DD")
	ErrTransactionNotFound   = errors.New("transaction not found")
)
