package repositories

import (
	"context"

	"kantong/internal/models"
)

func CreateUser(ctx context.Context, q Querier, u *models.User) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO users (username, email, password)
		VALUES (?, ?, ?)`, u.Username, u.Email, u.Password)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = int(id)
	return nil
}

func GetUserByEmail(ctx context.Context, q Querier, email string) (*models.User, error) {
	return scanUser(q.QueryRowContext(ctx, `
		SELECT id, username, email, password, is_superuser, is_active, created_at
		FROM users WHERE email = ?`, email))
}

func GetUserByID(ctx context.Context, q Querier, userID int) (*models.User, error) {
	return scanUser(q.QueryRowContext(ctx, `
		SELECT id, username, email, password, is_superuser, is_active, created_at
		FROM users WHERE id = ?`, userID))
}

type userScanner interface {
	Scan(dest ...any) error
}

func scanUser(row userScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsSuperuser, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
