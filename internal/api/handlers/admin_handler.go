package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"givehub/domain"
	"givehub/internal/api/presenters"
	"givehub/pkg/admin"
)

type (
	AdminHandler interface {
		ForceComplete(c *fiber.Ctx) error
		DeleteDonation(c *fiber.Ctx) error
		ProvisionAccount(c *fiber.Ctx) error
		DeprovisionAccount(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
		validator    *validator.Validate
	}
)

func NewAdminHandler(adminService admin.AdminService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

func (h *adminHandler) ForceComplete(c *fiber.Ctx) error {
	callerID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.adminService.ForceComplete(c.Context(), donationID, callerID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedForceComplete, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForceComplete)
}

func (h *adminHandler) DeleteDonation(c *fiber.Ctx) error {
	callerID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.adminService.DeleteDonation(c.Context(), donationID, callerID); err != nil {
		// Deleting something already gone leaves the system in the requested
		// state, so NotFound is answered as success.
		if errors.Is(err, domain.ErrDonationNotFound) {
			return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAdminDeleteAlready)
		}
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAdminDelete, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessAdminDelete)
}

func (h *adminHandler) ProvisionAccount(c *fiber.Ctx) error {
	callerID := c.Locals("user_id").(string)

	req := new(domain.ProvisionAccountRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProvisionAccount, err)
	}

	result, err := h.adminService.ProvisionAccount(c.Context(), *req, callerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedProvisionAccount, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessProvisionAccount)
}

func (h *adminHandler) DeprovisionAccount(c *fiber.Ctx) error {
	callerID := c.Locals("user_id").(string)
	userID := c.Params("id")

	if err := h.adminService.DeprovisionAccount(c.Context(), userID, callerID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeprovisionAccount, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeprovisionAccount)
}
