package handlers

import (
	"github.com/gofiber/fiber/v2"

	"givehub/domain"
	"givehub/internal/api/presenters"
	"givehub/pkg/notification"
)

type (
	NotificationHandler interface {
		GetUserNotifications(c *fiber.Ctx) error
		MarkAsRead(c *fiber.Ctx) error
		CountUnread(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
	}
}

func (h *notificationHandler) GetUserNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	notifications, count, err := h.notificationService.GetUserNotifications(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"notifications": notifications,
		"pagination":    paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	notificationID := c.Params("id")

	if err := h.notificationService.MarkAsRead(c.Context(), notificationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedMarkAsRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAsRead)
}

func (h *notificationHandler) CountUnread(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetUnreadCount, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"unread_count": count,
	}, fiber.StatusOK, domain.MessageSuccessGetUnreadCount)
}
