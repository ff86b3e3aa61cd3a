// AngelaMos | 2026
// identity.go

package core

import (
	"fmt"
)

// Identity is the verified user an operation acts on behalf of. Email is the
// handle written into audit columns.
type Identity struct {
	UserID     int64
	Email      string
	Name       string
	EmployeeID string
	Role       string
}

func (i Identity) IsZero() bool {
	return i.UserID == 0 && i.Email == ""
}

// Actor returns the audit handle, failing when no identity is present.
func (i Identity) Actor() (string, error) {
	if i.Email == "" {
		return "", fmt.Errorf("actor: %w", ErrUnauthorized)
	}
	return i.Email, nil
}
