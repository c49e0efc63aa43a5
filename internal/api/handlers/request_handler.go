package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"givehub/domain"
	"givehub/internal/api/presenters"
	"givehub/pkg/request"
)

type (
	RequestHandler interface {
		SubmitRequest(c *fiber.Ctx) error
		GetDonationRequests(c *fiber.Ctx) error
		GetUserRequests(c *fiber.Ctx) error
		ApproveRequest(c *fiber.Ctx) error
		RejectRequest(c *fiber.Ctx) error
		ConfirmReceipt(c *fiber.Ctx) error
	}

	requestHandler struct {
		requestService request.RequestService
		validator      *validator.Validate
	}
)

func NewRequestHandler(requestService request.RequestService, validator *validator.Validate) RequestHandler {
	return &requestHandler{
		requestService: requestService,
		validator:      validator,
	}
}

func (h *requestHandler) SubmitRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.SubmitRequestRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitRequest, err)
	}

	result, err := h.requestService.SubmitRequest(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSubmitRequest, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessSubmitRequest)
}

func (h *requestHandler) GetDonationRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	requests, err := h.requestService.GetDonationRequests(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"requests": requests,
	}, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) GetUserRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	requests, count, err := h.requestService.GetUserRequests(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"requests":   requests,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) ApproveRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	if err := h.requestService.ApproveRequest(c.Context(), requestID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedApproveRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessApproveRequest)
}

func (h *requestHandler) RejectRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	if err := h.requestService.RejectRequest(c.Context(), requestID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRejectRequest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRejectRequest)
}

func (h *requestHandler) ConfirmReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	requestID := c.Params("id")

	if err := h.requestService.ConfirmReceipt(c.Context(), requestID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedConfirmReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessConfirmReceipt)
}
