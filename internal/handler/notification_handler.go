package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-service/pkg/logger"
	"portal-service/prometheus"
)

// ListNotifications returns the user's notifications, newest first, one page
func ListNotifications(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("list_notifications")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := ledger.ListNotifications(c.Request().Context(), userID, unreadOnly)
	if err != nil {
		log.Error("Notification listing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "notification listing failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// UnreadCount returns the user's unread notification count
func UnreadCount(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	count, err := ledger.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		log.Error("Unread count failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unread count failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

// MarkRead marks the user's notifications for one ticket as read
func MarkRead(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("mark_read")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ticketID, err := strconv.ParseUint(c.Param("ticket_id"), 10, 32)
	if err != nil {
		log.Error("Invalid ticket ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket ID"})
	}

	updated, err := ledger.MarkRead(c.Request().Context(), userID, uint(ticketID))
	if err != nil {
		log.Error("Mark read failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

// MarkAllRead marks every unread notification for the user as read
func MarkAllRead(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("mark_all_read")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	updated, err := ledger.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		log.Error("Mark all read failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}
