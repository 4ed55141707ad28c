package application

import "github.com/bnema/riot-accounts-cli/internal/domain"

type AddAccountCommand struct {
	ID          domain.AccountID
	DisplayName string
	Username    string
	Password    string
}

type SetCredentialCommand struct {
	ID       domain.AccountID
	Password string
}

// UpdateAccountCommand changes the fields that are set; nil leaves a field as is.
type UpdateAccountCommand struct {
	ID          domain.AccountID
	DisplayName *string
	Username    *string
}
