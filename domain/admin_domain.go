package domain

import (
	"errors"
)

var (
	MessageSuccessForceComplete      = "donation force-completed successfully"
	MessageSuccessAdminDelete        = "donation deleted successfully"
	MessageSuccessAdminDeleteAlready = "donation already deleted"
	MessageSuccessProvisionAccount   = "account provisioned successfully"
	MessageSuccessDeprovisionAccount = "account removed successfully"

	MessageFailedForceComplete      = "failed to force-complete donation"
	MessageFailedAdminDelete        = "failed to delete donation"
	MessageFailedProvisionAccount   = "failed to provision account"
	MessageFailedDeprovisionAccount = "failed to remove account"

	ErrSelfDeprovision = errors.New("admins cannot remove their own account")
	ErrInvalidRole     = errors.New("invalid role")
)

type (
	ProvisionAccountRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"required,oneof=User Admin"`
	}

	ProvisionAccountResponse struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}
)
