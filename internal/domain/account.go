package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

type AccountID string

type Account struct {
	ID          AccountID
	DisplayName string
	Username    string
	// CredentialRef points to a secret-store entry holding the account password.
	CredentialRef string
	CreatedAt     time.Time
	LastUsed      *time.Time
}

// ValidateDisplayName checks that name can be used as a snapshot directory key.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidDisplayName)
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("%w: %q has leading or trailing spaces", ErrInvalidDisplayName, name)
	}
	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q may not start with a dot", ErrInvalidDisplayName, name)
	}
	if strings.ContainsAny(name, `/\:*?"<>|`) {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidDisplayName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidDisplayName, name)
		}
	}

	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if err := ValidateDisplayName(a.DisplayName); err != nil {
		return err
	}
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("username is required")
	}

	return nil
}

// SameUser reports whether identity names this account's login.
func (a Account) SameUser(identity string) bool {
	identity = strings.TrimSpace(identity)
	return identity != "" && strings.EqualFold(identity, strings.TrimSpace(a.Username))
}
