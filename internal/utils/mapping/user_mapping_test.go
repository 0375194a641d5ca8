package mapping_test

import (
	"testing"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Email is NOT NULL in the schema while registration treats it as optional,
// so a missing email must map to an empty string, never to SQL NULL.
func TestToModelUser_OptionalFieldsForLocalUser(t *testing.T) {
	d := domain.User{
		UserID:       uuid.NewString(),
		Username:     "haushalt",
		Name:         "Haushalt",
		PasswordHash: "bcrypt-hash",
		AuthProvider: domain.ProviderLocal,
	}

	m := mapping.ToModelUser(d)

	assert.Equal(t, "", m.Email)
	// Local users have no provider subject; the partial unique index on
	// (auth_provider, provider_user_id) relies on it being NULL.
	assert.False(t, m.ProviderUserID.Valid)
	assert.True(t, m.PasswordHash.Valid)
	assert.False(t, m.RefreshTokenHash.Valid)
	assert.False(t, m.RefreshTokenExpiryTime.Valid)
}

func TestUserMapping_OAuthUserRoundTrip(t *testing.T) {
	d := domain.User{
		UserID:         uuid.NewString(),
		Username:       "h.mustermann@example.com",
		Name:           "H. Mustermann",
		Email:          "h.mustermann@example.com",
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: "google-subject-123",
		EmailVerified:  true,
	}

	back := mapping.ToDomainUser(mapping.ToModelUser(d))

	assert.Equal(t, d.Email, back.Email)
	assert.Equal(t, d.ProviderUserID, back.ProviderUserID)
	assert.Equal(t, "", back.PasswordHash)
	assert.True(t, back.EmailVerified)
}
