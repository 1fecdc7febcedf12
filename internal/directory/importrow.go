package directory

import (
	"regexp"
	"strings"

	"mscp/internal/domain"
)

// emailPattern accepts the standard local@domain.tld shape. Stricter RFC
// parsing is left to the mail server; import only needs to reject obvious
// garbage.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ImportRow is one candidate user produced by the bulk-import file parser.
// Which file format produced it is irrelevant here; acceptance enforces the
// same invariants for every source.
type ImportRow struct {
	Username        string
	Email           string
	FullName        string
	Role            domain.UserRole
	StakeholderName string
}

// ValidateImportRow normalizes and validates a candidate row. A blank
// username is derived from the email local part. Missing email, malformed
// email, or an unknown role reject the row with a ValidationError naming the
// field.
func ValidateImportRow(row ImportRow) (ImportRow, error) {
	row.Email = strings.TrimSpace(strings.ToLower(row.Email))
	row.Username = strings.TrimSpace(row.Username)
	row.FullName = strings.TrimSpace(row.FullName)

	if row.Email == "" {
		return row, domain.NewValidationError("email", "is required")
	}
	if !emailPattern.MatchString(row.Email) {
		return row, domain.NewValidationError("email", "is not a valid address")
	}
	if row.Username == "" {
		row.Username = row.Email[:strings.Index(row.Email, "@")]
	}
	if row.Role == "" {
		row.Role = domain.RoleStakeholderUser
	}
	if !domain.ValidUserRoles[row.Role] {
		return row, domain.NewValidationError("role", "is not a recognized role")
	}
	return row, nil
}
