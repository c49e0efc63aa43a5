package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"givehub/domain"
)

// statusForError maps domain errors to HTTP statuses: 403 for authorization,
// 404 for missing resources, 409 for state-machine conflicts, 400 for the
// rest of the client errors, 500 for anything unrecognized.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrUnauthorizedDonationAccess),
		errors.Is(err, domain.ErrUnauthorizedRequestAccess),
		errors.Is(err, domain.ErrSelfDeprovision):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrDonationNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDonationReserved),
		errors.Is(err, domain.ErrDuplicateRequest),
		errors.Is(err, domain.ErrEmailAlreadyUsed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrRequestNotPending),
		errors.Is(err, domain.ErrRequestNotApproved),
		errors.Is(err, domain.ErrDonationNotAvailable),
		errors.Is(err, domain.ErrDonationNotEditable),
		errors.Is(err, domain.ErrOwnRequest),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrInvalidDonationStatus),
		errors.Is(err, domain.ErrInvalidDonationCondition),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
