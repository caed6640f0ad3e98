package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"kantong/internal/models"
)

// GetWallet fetches a wallet scoped to its owner.
func GetWallet(ctx context.Context, q Querier, walletID, ownerID int) (*models.Wallet, error) {
	return scanWallet(q.QueryRowContext(ctx, `
		SELECT id, user_id, name, balance, icon, created_at
		FROM wallets
		WHERE id = ? AND user_id = ?`, walletID, ownerID))
}

// WalletForUpdate fetches a wallet scoped to its owner and takes an
// exclusive row lock held until the enclosing transaction ends. Must only be
// called with a Querier backed by *sql.Tx.
func WalletForUpdate(ctx context.Context, q Querier, walletID, ownerID int) (*models.Wallet, error) {
	return scanWallet(q.QueryRowContext(ctx, `
		SELECT id, user_id, name, balance, icon, created_at
		FROM wallets
		WHERE id = ? AND user_id = ?
		FOR UPDATE`, walletID, ownerID))
}

type walletRow interface {
	Scan(dest ...any) error
}

func scanWallet(row walletRow) (*models.Wallet, error) {
	var w models.Wallet
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Balance, &w.Icon, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ApplyWalletDelta adds the amount to the balance for income and subtracts
// it for expense. Callers mutating a balance they have read must hold the
// row lock from WalletForUpdate in the same transaction.
func ApplyWalletDelta(ctx context.Context, q Querier, walletID int, amount decimal.Decimal, income bool) error {
	query := `UPDATE wallets SET balance = balance - ? WHERE id = ?`
	if income {
		query = `UPDATE wallets SET balance = balance + ? WHERE id = ?`
	}
	_, err := q.ExecContext(ctx, query, amount, walletID)
	return err
}

func CreateWallet(ctx context.Context, q Querier, w *models.Wallet) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO wallets (user_id, name, balance, icon)
		VALUES (?, ?, ?, ?)`, w.UserID, w.Name, w.Balance, w.Icon)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = int(id)
	return nil
}

func ListWalletsByOwner(ctx context.Context, q Querier, ownerID int) ([]models.Wallet, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, name, balance, icon, created_at
		FROM wallets
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Balance, &w.Icon, &w.CreatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// DeleteWallet removes an owner's wallet. The FK from transactions is
// RESTRICT, so a wallet still referenced by the ledger cannot be deleted.
func DeleteWallet(ctx context.Context, q Querier, walletID, ownerID int) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM wallets WHERE id = ? AND user_id = ?`, walletID, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
