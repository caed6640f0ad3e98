package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"kantong/internal/models"
	"kantong/pkg/utils"
)

// LedgerStore runs one atomic unit of work: everything done through the
// LedgerTx commits together or rolls back together, and row locks taken
// inside are held until the unit ends.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the locked read/write surface the engine uses inside a unit
// of work. Absent rows surface as sql.ErrNoRows.
type LedgerTx interface {
	WalletForUpdate(ctx context.Context, walletID, ownerID int) (*models.Wallet, error)
	ApplyWalletDelta(ctx context.Context, walletID int, amount decimal.Decimal, income bool) error
	CategoryByID(ctx context.Context, categoryID int) (*models.Category, error)
	FindTransferCategory(ctx context.Context, ownerID int) (*models.Category, error)
	EnsureTransferCategory(ctx context.Context) (*models.Category, error)
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	TransactionForUpdate(ctx context.Context, transactionID, ownerID int) (*models.Transaction, error)
	TransferLegsForUpdate(ctx context.Context, groupID string, ownerID int) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID, ownerID int) (bool, error)
	DeleteTransferLegs(ctx context.Context, groupID string, ownerID int) (int64, error)
}

// Ledger creates, deletes and transfers transactions while keeping wallet
// balances consistent. Balances are only ever mutated under a row lock
// inside one unit of work, so two operations on the same wallet serialize
// and operations on disjoint wallets run in parallel.
type Ledger struct {
	store LedgerStore
	log   *logrus.Logger
}

func NewLedger(store LedgerStore, log *logrus.Logger) *Ledger {
	return &Ledger{store: store, log: log}
}

type CreateTransactionInput struct {
	WalletID        int             `json:"wallet_id"`
	CategoryID      int             `json:"category_id"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	TransactionDate string          `json:"transaction_date,omitempty"`
	Description     string          `json:"description,omitempty"`
}

type TransferInput struct {
	SourceWalletID  int             `json:"source_wallet_id"`
	DestWalletID    int             `json:"dest_wallet_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date,omitempty"`
	Description     string          `json:"description,omitempty"`
}

type TransferResult struct {
	OutTransaction *models.Transaction `json:"out_transaction"`
	InTransaction  *models.Transaction `json:"in_transaction"`
	Amount         decimal.Decimal     `json:"amount"`
	SourceWallet   string              `json:"source_wallet"`
	DestWallet     string              `json:"dest_wallet"`
}

const dateLayout = "2006-01-02"

// CreateTransaction records an income or expense and applies its delta to
// the wallet balance under a row lock. An EXPENSE larger than the current
// balance is rejected; balances never go negative through the ledger.
func (l *Ledger) CreateTransaction(ctx context.Context, ownerID int, in CreateTransactionInput) (*models.Transaction, error) {
	if !in.Amount.IsPositive() || !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, ErrInvalidAmount
	}
	if !models.ValidTransactionType(in.Type) {
		return nil, ErrInvalidType
	}
	if err := utils.ValidateDescription(in.Description); err != nil {
		return nil, ErrInvalidDescription
	}
	date, err := resolveDate(in.TransactionDate)
	if err != nil {
		return nil, err
	}

	var created *models.Transaction
	err = l.store.WithinTx(ctx, func(tx LedgerTx) error {
		wallet, err := tx.WalletForUpdate(ctx, in.WalletID, ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWalletNotFound
		}
		if err != nil {
			return err
		}

		category, err := tx.CategoryByID(ctx, in.CategoryID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		if err != nil {
			return err
		}
		if !category.AccessibleBy(ownerID) {
			return ErrCategoryNotAccessible
		}
		if category.Type != in.Type {
			return ErrCategoryTypeMismatch
		}

		if in.Type == models.TypeExpense && wallet.Balance.LessThan(in.Amount) {
			return ErrInsufficientFunds
		}

		t := &models.Transaction{
			UserID:          ownerID,
			WalletID:        in.WalletID,
			CategoryID:      in.CategoryID,
			Amount:          in.Amount,
			Type:            in.Type,
			TransactionDate: date,
			Description:     in.Description,
			CategoryName:    category.Name,
			WalletName:      wallet.Name,
		}
		if err := tx.InsertTransaction(ctx, t); err != nil {
			return err
		}

		if err := tx.ApplyWalletDelta(ctx, in.WalletID, in.Amount, in.Type == models.TypeIncome); err != nil {
			return err
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":        ownerID,
		"wallet_id":      in.WalletID,
		"transaction_id": created.ID,
		"type":           in.Type,
	}).Info("transaction created")
	return created, nil
}

// DeleteTransaction reverses the balance effect of an owner's transaction
// and removes the row, all in one unit of work. If the row names a transfer
// group, both legs are removed and both wallets restored, so a transfer can
// never be left half-deleted. Returns false when nothing was deleted.
func (l *Ledger) DeleteTransaction(ctx context.Context, transactionID, ownerID int) (bool, error) {
	err := l.store.WithinTx(ctx, func(tx LedgerTx) error {
		t, err := tx.TransactionForUpdate(ctx, transactionID, ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}

		if t.TransferGroupID != "" {
			return l.deleteTransferGroup(ctx, tx, t.TransferGroupID, ownerID)
		}

		if _, err := tx.WalletForUpdate(ctx, t.WalletID, ownerID); err != nil {
			return err
		}
		// Deleting an income subtracts it back; deleting an expense adds it back.
		if err := tx.ApplyWalletDelta(ctx, t.WalletID, t.Amount, t.Type == models.TypeExpense); err != nil {
			return err
		}

		ok, err := tx.DeleteTransaction(ctx, transactionID, ownerID)
		if err != nil {
			return err
		}
		if !ok {
			// Row vanished between lock and delete; abort so the
			// reversal above is not applied twice.
			return ErrTransactionNotFound
		}
		return nil
	})
	if errors.Is(err, ErrTransactionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":        ownerID,
		"transaction_id": transactionID,
	}).Info("transaction deleted")
	return true, nil
}

func (l *Ledger) deleteTransferGroup(ctx context.Context, tx LedgerTx, groupID string, ownerID int) error {
	legs, err := tx.TransferLegsForUpdate(ctx, groupID, ownerID)
	if err != nil {
		return err
	}
	if len(legs) == 0 {
		return ErrTransactionNotFound
	}

	for _, walletID := range sortedWalletIDs(legs) {
		if _, err := tx.WalletForUpdate(ctx, walletID, ownerID); err != nil {
			return err
		}
	}
	for _, leg := range legs {
		if err := tx.ApplyWalletDelta(ctx, leg.WalletID, leg.Amount, leg.Type == models.TypeExpense); err != nil {
			return err
		}
	}

	deleted, err := tx.DeleteTransferLegs(ctx, groupID, ownerID)
	if err != nil {
		return err
	}
	if deleted != int64(len(legs)) {
		return fmt.Errorf("transfer group %s: expected to delete %d legs, deleted %d", groupID, len(legs), deleted)
	}
	return nil
}

// TransferFunds moves an amount between two wallets of the same owner. Both
// wallets are locked in ascending id order, so two opposite-direction
// transfers cannot deadlock. The two legs are tagged with the global
// Transfer category and share a transfer group id; their net effect on the
// owner's total funds is zero.
func (l *Ledger) TransferFunds(ctx context.Context, ownerID int, in TransferInput) (*TransferResult, error) {
	if in.SourceWalletID == in.DestWalletID {
		return nil, ErrSameWalletTransfer
	}
	if !in.Amount.IsPositive() || !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, ErrInvalidAmount
	}
	if err := utils.ValidateDescription(in.Description); err != nil {
		return nil, ErrInvalidDescription
	}
	date, err := resolveDate(in.TransactionDate)
	if err != nil {
		return nil, err
	}

	var result *TransferResult
	err = l.store.WithinTx(ctx, func(tx LedgerTx) error {
		wallets := make(map[int]*models.Wallet, 2)
		for _, id := range orderedPair(in.SourceWalletID, in.DestWalletID) {
			w, err := tx.WalletForUpdate(ctx, id, ownerID)
			if errors.Is(err, sql.ErrNoRows) {
				if id == in.SourceWalletID {
					return ErrSourceWalletNotFound
				}
				return ErrDestWalletNotFound
			}
			if err != nil {
				return err
			}
			wallets[id] = w
		}
		source := wallets[in.SourceWalletID]
		dest := wallets[in.DestWalletID]

		if source.Balance.LessThan(in.Amount) {
			return ErrInsufficientFunds
		}

		category, err := tx.FindTransferCategory(ctx, ownerID)
		if errors.Is(err, sql.ErrNoRows) {
			category, err = tx.EnsureTransferCategory(ctx)
		}
		if err != nil {
			return err
		}

		if err := tx.ApplyWalletDelta(ctx, source.ID, in.Amount, false); err != nil {
			return err
		}
		if err := tx.ApplyWalletDelta(ctx, dest.ID, in.Amount, true); err != nil {
			return err
		}

		groupID, err := uuid.NewV4()
		if err != nil {
			return err
		}

		base := in.Description
		if base == "" {
			base = fmt.Sprintf("Transfer %s -> %s", source.Name, dest.Name)
		}

		out := &models.Transaction{
			UserID:          ownerID,
			WalletID:        source.ID,
			CategoryID:      category.ID,
			Amount:          in.Amount,
			Type:            models.TypeExpense,
			TransactionDate: date,
			Description:     "[OUT] " + base,
			TransferGroupID: groupID.String(),
			CategoryName:    category.Name,
			WalletName:      source.Name,
		}
		if err := tx.InsertTransaction(ctx, out); err != nil {
			return err
		}

		inLeg := &models.Transaction{
			UserID:          ownerID,
			WalletID:        dest.ID,
			CategoryID:      category.ID,
			Amount:          in.Amount,
			Type:            models.TypeIncome,
			TransactionDate: date,
			Description:     "[IN] " + base,
			TransferGroupID: groupID.String(),
			CategoryName:    category.Name,
			WalletName:      dest.Name,
		}
		if err := tx.InsertTransaction(ctx, inLeg); err != nil {
			return err
		}

		result = &TransferResult{
			OutTransaction: out,
			InTransaction:  inLeg,
			Amount:         in.Amount,
			SourceWallet:   source.Name,
			DestWallet:     dest.Name,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"source":      in.SourceWalletID,
		"destination": in.DestWalletID,
		"group_id":    result.OutTransaction.TransferGroupID,
	}).Info("transfer completed")
	return result, nil
}

func orderedPair(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

func sortedWalletIDs(legs []models.Transaction) []int {
	seen := make(map[int]bool, len(legs))
	var ids []int
	for _, leg := range legs {
		if !seen[leg.WalletID] {
			seen[leg.WalletID] = true
			ids = append(ids, leg.WalletID)
		}
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func resolveDate(s string) (string, error) {
	if s == "" {
		return time.Now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}
