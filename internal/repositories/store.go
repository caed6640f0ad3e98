package repositories

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"kantong/internal/models"
	"kantong/internal/services"
)

// Store runs ledger units of work against MySQL. Each WithinTx call is one
// atomic unit: everything the callback does commits together or not at all.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx services.LedgerTx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

// Tx exposes the locked reads and writes the ledger engine performs inside
// one unit of work. Row locks taken here are held until WithinTx returns.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) WalletForUpdate(ctx context.Context, walletID, ownerID int) (*models.Wallet, error) {
	return WalletForUpdate(ctx, t.tx, walletID, ownerID)
}

func (t *Tx) ApplyWalletDelta(ctx context.Context, walletID int, amount decimal.Decimal, income bool) error {
	return ApplyWalletDelta(ctx, t.tx, walletID, amount, income)
}

func (t *Tx) CategoryByID(ctx context.Context, categoryID int) (*models.Category, error) {
	return GetCategory(ctx, t.tx, categoryID)
}

func (t *Tx) FindTransferCategory(ctx context.Context, ownerID int) (*models.Category, error) {
	return FindTransferCategory(ctx, t.tx, ownerID)
}

func (t *Tx) EnsureTransferCategory(ctx context.Context) (*models.Category, error) {
	return EnsureTransferCategory(ctx, t.tx)
}

func (t *Tx) InsertTransaction(ctx context.Context, tr *models.Transaction) error {
	return InsertTransaction(ctx, t.tx, tr)
}

func (t *Tx) TransactionForUpdate(ctx context.Context, transactionID, ownerID int) (*models.Transaction, error) {
	return GetTransactionForUpdate(ctx, t.tx, transactionID, ownerID)
}

func (t *Tx) TransferLegsForUpdate(ctx context.Context, groupID string, ownerID int) ([]models.Transaction, error) {
	return TransferLegsForUpdate(ctx, t.tx, groupID, ownerID)
}

func (t *Tx) DeleteTransaction(ctx context.Context, transactionID, ownerID int) (bool, error) {
	return DeleteTransactionRow(ctx, t.tx, transactionID, ownerID)
}

func (t *Tx) DeleteTransferLegs(ctx context.Context, groupID string, ownerID int) (int64, error) {
	return DeleteTransferLegs(ctx, t.tx, groupID, ownerID)
}
