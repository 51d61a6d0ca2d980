package model

import "time"

// Back-office roles. Route groups decide which roles they accept; see the
// router for the exact matrix.
const (
	RoleAdmin     = "admin"
	RoleEditor    = "editor"
	RoleModerator = "moderator"
)

// User represents a back-office account as stored in the `users` table.
// Passwords are stored as bcrypt hashes, refresh tokens as SHA-256 digests.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email, unique, stored lowercased
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role (admin|editor|moderator)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is never stored; only its SHA-256 hex digest.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
