package repositories

import (
	"context"
	"database/sql"

	"kantong/internal/models"
)

func GetCategory(ctx context.Context, q Querier, categoryID int) (*models.Category, error) {
	return scanCategory(q.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories
		WHERE id = ?`, categoryID))
}

// FindTransferCategory looks up a Transfer EXPENSE category visible to the
// owner, preferring an owner-specific row over the global one.
func FindTransferCategory(ctx context.Context, q Querier, ownerID int) (*models.Category, error) {
	return scanCategory(q.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories
		WHERE (user_id = ? OR user_id IS NULL) AND name = ? AND type = ?
		ORDER BY user_id IS NULL, id
		LIMIT 1`, ownerID, models.TransferCategoryName, models.TypeExpense))
}

// EnsureTransferCategory creates the global Transfer category if it does not
// exist yet and returns it. Idempotent under concurrent first use: the
// upsert resolves against the (owner_key, name, type) unique key and
// LAST_INSERT_ID reports the surviving row's id either way.
func EnsureTransferCategory(ctx context.Context, q Querier) (*models.Category, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, type, icon)
		VALUES (NULL, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
		models.TransferCategoryName, models.TypeExpense, models.TransferCategoryIcon)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetCategory(ctx, q, int(id))
}

func ListCategories(ctx context.Context, q Querier, ownerID int, typeFilter string) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories
		WHERE (user_id IS NULL OR user_id = ?)`
	args := []any{ownerID}

	if typeFilter != "" {
		query += ` AND type = ?`
		args = append(args, typeFilter)
	}
	query += ` ORDER BY type, name`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategoryRows(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func CreateCategory(ctx context.Context, q Querier, c *models.Category) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, type, icon)
		VALUES (?, ?, ?, ?)`, c.UserID, c.Name, c.Type, c.Icon)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = int(id)
	c.IsGlobal = c.UserID == nil
	return nil
}

// DeleteCategory removes an owner's category. Global rows are not touched
// here; see DeleteGlobalCategory.
func DeleteCategory(ctx context.Context, q Querier, categoryID, ownerID int) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, categoryID, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteGlobalCategory removes a global category. Callers must have checked
// the requester is a superuser.
func DeleteGlobalCategory(ctx context.Context, q Querier, categoryID int) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = ? AND user_id IS NULL`, categoryID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type categoryScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row categoryScanner) (*models.Category, error) {
	return scanCategoryRows(row)
}

func scanCategoryRows(row categoryScanner) (*models.Category, error) {
	var c models.Category
	var userID sql.NullInt64
	err := row.Scan(&c.ID, &userID, &c.Name, &c.Type, &c.Icon, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := int(userID.Int64)
		c.UserID = &uid
	}
	c.IsGlobal = !userID.Valid
	return &c, nil
}
