package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-service/internal/model"
	"portal-service/pkg/apperr"
	"portal-service/pkg/logger"
	"portal-service/prometheus"
)

// GetHelpdeskProfile returns the user's helpdesk capability flags
func GetHelpdeskProfile(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("profile")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	profile, err := profiles.GetProfile(c.Request().Context(), userID)
	if err != nil {
		log.Error("Profile resolution failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "resolution failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pode_receber_chamados":  profile.CanReceiveTickets,
		"is_gerente_area":        profile.ManagesArea,
		"pode_ver_filas":         profile.CanViewQueues(),
		"pode_ver_areas_geridas": profile.CanViewManagedAreas(),
		"pode_ver_arvore":        profile.CanViewTree(),
		"pode_ver_chamados":      profile.CanViewOwnTickets(),
	})
}

// ListHelpdeskClients returns the clients the user may open tickets against
func ListHelpdeskClients(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("list_clients")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	clients, err := resolver.ListClientsForHelpdesk(c.Request().Context(), userID)
	if err != nil {
		log.Error("Client listing failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "resolution failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"clients": clients})
}

// CreateTicket opens a ticket, routes it to its queues and notifies every
// queue member of the creation event.
func CreateTicket(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("create_ticket")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		ClientID uint   `json:"client_id"`
		AreaID   *uint  `json:"area_id,omitempty"`
		Subject  string `json:"subject"`
		Body     string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse ticket creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.ClientID == 0 || req.Subject == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id and subject are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	ticket := &model.Ticket{
		ClientID: req.ClientID,
		AreaID:   req.AreaID,
		UserID:   userID,
		Status:   model.TicketOpen,
		Subject:  req.Subject,
	}

	queues, err := router.OpenTicket(c.Request().Context(), ticket)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeConfiguration {
			log.Error("Client has no queue configured", zap.Uint("client_id", req.ClientID))
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no queue configured"})
		}
		log.Error("Failed to open ticket", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket creation failed"})
	}
	prometheus.RecordNotification(model.EventTicketCreated)

	if req.Body != "" {
		msg := &model.TicketMessage{TicketID: ticket.ID, UserID: userID, Body: req.Body}
		if err := entities.AddMessage(c.Request().Context(), msg); err != nil {
			log.Error("Failed to record first message", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		}
	}

	log.Info("Ticket created",
		zap.Uint("ticket_id", ticket.ID),
		zap.Uint("client_id", ticket.ClientID),
		zap.Int("queues", len(queues)))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Ticket created successfully",
		"ticket":  ticket,
		"queues":  queues,
	})
}

// ListMyTickets returns the authenticated user's own tickets
func ListMyTickets(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("list_tickets")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	tickets, err := entities.TicketsForUser(c.Request().Context(), userID)
	if err != nil {
		log.Error("Ticket listing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket listing failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// AddTicketMessage appends a message to a ticket thread and fans out a
// new-message notification to the ticket's current queue members.
func AddTicketMessage(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordHelpdeskOperation("add_message")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid ticket ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket ID"})
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.Bind(&req); err != nil || req.Body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body is required"})
	}

	ctx := c.Request().Context()
	ticket, err := entities.FindTicket(ctx, uint(ticketID))
	if err != nil {
		log.Error("Ticket not found", zap.Uint64("id", ticketID), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	}

	msg := &model.TicketMessage{TicketID: ticket.ID, UserID: userID, Body: req.Body}
	if err := entities.AddMessage(ctx, msg); err != nil {
		log.Error("Failed to add message", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "message creation failed"})
	}

	if err := router.FanOut(ctx, ticket, model.EventNewMessage); err != nil {
		log.Error("Notification fan-out failed", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "notification failed"})
	}
	prometheus.RecordNotification(model.EventNewMessage)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Message added successfully",
		"entry":   msg,
	})
}
