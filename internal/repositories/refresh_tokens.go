package repositories

import (
	"context"
	"database/sql"

	"kantong/internal/models"
)

func InsertRefreshToken(ctx context.Context, q Querier, t *models.RefreshToken) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?)`,
		t.UserID, t.TokenHash, t.ExpiresAt, nullString(t.UserAgent), nullString(t.IPAddress))
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

// GetRefreshTokenByHash returns a live (non-revoked, non-expired) token.
func GetRefreshTokenByHash(ctx context.Context, q Querier, tokenHash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	var userAgent, ipAddress sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, is_revoked, user_agent, ip_address, created_at
		FROM refresh_tokens
		WHERE token_hash = ? AND is_revoked = FALSE AND expires_at > NOW()`, tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.IsRevoked, &userAgent, &ipAddress, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.UserAgent = userAgent.String
	t.IPAddress = ipAddress.String
	return &t, nil
}

func RevokeRefreshToken(ctx context.Context, q Querier, tokenHash string) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE refresh_tokens SET is_revoked = TRUE WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func RevokeAllRefreshTokensForUser(ctx context.Context, q Querier, userID int) (int64, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE refresh_tokens SET is_revoked = TRUE WHERE user_id = ? AND is_revoked = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CleanupExpiredRefreshTokens removes expired or revoked rows; the cron job
// runs this daily.
func CleanupExpiredRefreshTokens(ctx context.Context, q Querier) (int64, error) {
	res, err := q.ExecContext(ctx, `
		DELETE FROM refresh_tokens WHERE expires_at < NOW() OR is_revoked = TRUE`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
