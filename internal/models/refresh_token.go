package models

// RefreshToken is stored as a SHA-256 hash of the opaque token handed to the
// client. Rotation revokes the old row and issues a fresh pair.
type RefreshToken struct {
	ID        int    `json:"id" db:"id"`
	UserID    int    `json:"user_id" db:"user_id"`
	TokenHash string `json:"-" db:"token_hash"`
	ExpiresAt string `json:"expires_at" db:"expires_at"`
	IsRevoked bool   `json:"is_revoked" db:"is_revoked"`
	UserAgent string `json:"user_agent,omitempty" db:"user_agent"`
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt string `json:"created_at,omitempty" db:"created_at"`
}
