package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountSetup(t *testing.T) {
	tests := []struct {
		name      string
		role      api.AccountType
		fields    api.ProfileFields
		wantFirst string
		wantCount int
	}{
		{
			name:   "seller complete",
			role:   api.AccountTypeSeller,
			fields: api.ProfileFields{BusinessName: "Ana Shop", Phone: "555", Address: "1 Main St"},
		},
		{
			name:      "seller missing everything",
			role:      api.AccountTypeSeller,
			wantFirst: "Business name is required",
			wantCount: 3,
		},
		{
			name:      "seller whitespace business name",
			role:      api.AccountTypeSeller,
			fields:    api.ProfileFields{BusinessName: "  ", Phone: "555", Address: "1 Main St"},
			wantFirst: "Business name is required",
			wantCount: 1,
		},
		{
			name:   "buyer complete without preferences",
			role:   api.AccountTypeBuyer,
			fields: api.ProfileFields{Phone: "555", Address: "1 Main St"},
		},
		{
			name:      "buyer missing phone",
			role:      api.AccountTypeBuyer,
			fields:    api.ProfileFields{Address: "1 Main St", BusinessName: "ignored"},
			wantFirst: "Phone number is required",
			wantCount: 1,
		},
		{
			name:      "buyer missing address",
			role:      api.AccountTypeBuyer,
			fields:    api.ProfileFields{Phone: "555"},
			wantFirst: "Address is required",
			wantCount: 1,
		},
		{
			name:      "unset role",
			role:      api.AccountTypeUnset,
			fields:    api.ProfileFields{Phone: "555", Address: "x"},
			wantFirst: "Please select an account type",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := AccountSetup(tt.role, tt.fields)
			require.Len(t, errs, tt.wantCount)
			if tt.wantCount == 0 {
				assert.NoError(t, errs.First())
				return
			}
			err := errs.First()
			assert.EqualError(t, err, tt.wantFirst)
			assert.True(t, errors.Is(err, common.ErrValidation))
		})
	}
}

func TestRegistration(t *testing.T) {
	assert.Empty(t, Registration("a@b.com", "pw123456", "Ana"))

	errs := Registration("", "123", "")
	require.Len(t, errs, 3)
	assert.Equal(t, map[string]string{
		"email":    "Email is required",
		"password": "Password must be at least 6 characters",
		"name":     "Name is required",
	}, errs.ByField())

	errs = Registration("not-an-email", "pw123456", "Ana")
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid email address", errs[0].Message)
}

func TestPassword_Length(t *testing.T) {
	assert.Nil(t, Password("password", strings.Repeat("a", MaxPasswordLength)))

	errs := Password("newPassword", strings.Repeat("a", MaxPasswordLength+1))
	require.Len(t, errs, 1)
	assert.Equal(t, "newPassword", errs[0].Field)
	assert.Equal(t, "Password must be at most 72 bytes", errs[0].Message)

	// 36 two-byte runes fit, 37 do not.
	assert.Nil(t, Password("password", strings.Repeat("ā", 36)))
	assert.NotNil(t, Password("password", strings.Repeat("ā", 37)))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
}

func TestStruct(t *testing.T) {
	errs := Struct(api.RegisterRequest{Email: "x", Password: "1", Name: ""})
	byField := errs.ByField()
	assert.Equal(t, "email must be a valid email address", byField["email"])
	assert.Equal(t, "password must be at least 6 characters long", byField["password"])
	assert.Equal(t, "name is required", byField["name"])

	assert.Empty(t, Struct(api.RegisterRequest{Email: "a@b.com", Password: "pw123456", Name: "Ana"}))
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	errs := FormatValidationErrors(errors.New("boom"))
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0].Message)
	assert.Nil(t, FormatValidationErrors(nil))
}
