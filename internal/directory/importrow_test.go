package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mscp/internal/directory"
	"mscp/internal/domain"
)

func TestValidateImportRow_DerivesUsernameFromEmail(t *testing.T) {
	row, err := directory.ValidateImportRow(directory.ImportRow{
		Email: "Jane.Banda@RedCross.org",
		Role:  domain.RoleStakeholderUser,
	})

	assert.NoError(t, err)
	assert.Equal(t, "jane.banda@redcross.org", row.Email)
	assert.Equal(t, "jane.banda", row.Username)
}

func TestValidateImportRow_KeepsExplicitUsername(t *testing.T) {
	row, err := directory.ValidateImportRow(directory.ImportRow{
		Username: "jbanda",
		Email:    "jane@redcross.org",
	})

	assert.NoError(t, err)
	assert.Equal(t, "jbanda", row.Username)
	// Blank role defaults to stakeholder_user.
	assert.Equal(t, domain.RoleStakeholderUser, row.Role)
}

func TestValidateImportRow_MissingEmail(t *testing.T) {
	_, err := directory.ValidateImportRow(directory.ImportRow{Username: "jbanda"})

	ve, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "email", ve.Field)
}

func TestValidateImportRow_MalformedEmail(t *testing.T) {
	for _, bad := range []string{"not-an-email", "a@b", "a b@c.org", "@missing.local", "trailing@dot."} {
		_, err := directory.ValidateImportRow(directory.ImportRow{Email: bad})
		ve, ok := domain.AsValidationError(err)
		assert.True(t, ok, "expected validation error for %q", bad)
		assert.Equal(t, "email", ve.Field)
	}
}

func TestValidateImportRow_UnknownRole(t *testing.T) {
	_, err := directory.ValidateImportRow(directory.ImportRow{
		Email: "jane@redcross.org",
		Role:  "superadmin",
	})

	ve, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "role", ve.Field)
}
