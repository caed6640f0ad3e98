package repositories

import (
	"context"
	"database/sql"

	"kantong/internal/models"
)

func InsertTransaction(ctx context.Context, q Querier, t *models.Transaction) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO transactions (user_id, wallet_id, category_id, amount, type, transaction_date, description, transfer_group_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.WalletID, t.CategoryID, t.Amount, t.Type, t.TransactionDate,
		nullString(t.Description), nullString(t.TransferGroupID))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

// GetTransactionForUpdate fetches an owner's transaction and locks the row
// so a concurrent delete of the same transaction blocks until commit.
func GetTransactionForUpdate(ctx context.Context, q Querier, transactionID, ownerID int) (*models.Transaction, error) {
	return scanTransaction(q.QueryRowContext(ctx, `
		SELECT id, user_id, wallet_id, category_id, amount, type, transaction_date, description, transfer_group_id, created_at
		FROM transactions
		WHERE id = ? AND user_id = ?
		FOR UPDATE`, transactionID, ownerID))
}

// TransferLegsForUpdate fetches and locks both legs of a transfer group.
func TransferLegsForUpdate(ctx context.Context, q Querier, groupID string, ownerID int) ([]models.Transaction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, wallet_id, category_id, amount, type, transaction_date, description, transfer_group_id, created_at
		FROM transactions
		WHERE transfer_group_id = ? AND user_id = ?
		ORDER BY id
		FOR UPDATE`, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		legs = append(legs, *t)
	}
	return legs, rows.Err()
}

func DeleteTransactionRow(ctx context.Context, q Querier, transactionID, ownerID int) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, transactionID, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func DeleteTransferLegs(ctx context.Context, q Querier, groupID string, ownerID int) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE transfer_group_id = ? AND user_id = ?`, groupID, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListTransactions returns an owner's transactions newest first, joined with
// the category and wallet names the UI renders.
func ListTransactions(ctx context.Context, q Querier, ownerID int, typeFilter string, limit, offset int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.wallet_id, t.category_id, t.amount, t.type,
		       t.transaction_date, t.description, t.transfer_group_id, t.created_at,
		       c.name AS category_name, w.name AS wallet_name
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		JOIN wallets w ON t.wallet_id = w.id
		WHERE t.user_id = ?`
	args := []any{ownerID}

	if typeFilter != "" {
		query += ` AND t.type = ?`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY t.transaction_date DESC, t.created_at DESC, t.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var description, groupID, categoryName, walletName sql.NullString
		err := rows.Scan(&t.ID, &t.UserID, &t.WalletID, &t.CategoryID, &t.Amount, &t.Type,
			&t.TransactionDate, &description, &groupID, &t.CreatedAt, &categoryName, &walletName)
		if err != nil {
			return nil, err
		}
		t.Description = description.String
		t.TransferGroupID = groupID.String
		t.CategoryName = categoryName.String
		t.WalletName = walletName.String
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

type transactionScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row transactionScanner) (*models.Transaction, error) {
	var t models.Transaction
	var description, groupID sql.NullString
	err := row.Scan(&t.ID, &t.UserID, &t.WalletID, &t.CategoryID, &t.Amount, &t.Type,
		&t.TransactionDate, &description, &groupID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.TransferGroupID = groupID.String
	return &t, nil
}
