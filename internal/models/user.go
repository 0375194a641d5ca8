package models

import (
	"database/sql"
	"time"
)

// User represents a user of the application.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	PasswordHash sql.NullString `db:"password_hash"` // Null for OAuth-only users
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// OAuth fields
	AuthProvider   string         `db:"auth_provider"` // LOCAL or GOOGLE
	ProviderUserID sql.NullString `db:"provider_user_id"`
	EmailVerified  bool           `db:"email_verified"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`        // Store hash of the refresh token
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"` // Expiry of the stored refresh token
}
