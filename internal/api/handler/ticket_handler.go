package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/metrics"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

// TicketHandler serves support tickets to both clients and admins. The
// service scopes every call to the actor.
type TicketHandler struct {
	tickets ports.TicketService
}

func NewTicketHandler(tickets ports.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Create opens a ticket with its first message.
//
// @Summary      Open a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Subject, priority and message"
// @Success      201   {object}  domain.Ticket
// @Failure      422   {object}  errorResponse
// @Router       /v1/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req createTicketRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.tickets.Create(c.Request().Context(), a, ports.CreateTicketInput{
		Subject:  req.Subject,
		Priority: domain.TicketPriority(req.Priority),
		Message:  req.Message,
	})
	if err != nil {
		return err
	}
	metrics.TicketMessagesTotal.WithLabelValues(authorLabel(a)).Inc()
	return c.JSON(http.StatusCreated, t)
}

// Reply appends a message. Clients can only reply to open tickets.
//
// @Summary      Reply to a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Ticket ID"
// @Param        body  body      replyRequest  true  "Message"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "Ticket is resolved"
// @Router       /v1/tickets/{id}/messages [post]
// @Router       /v1/admin/tickets/{id}/messages [post]
func (h *TicketHandler) Reply(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req replyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.tickets.Reply(c.Request().Context(), a, c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	metrics.TicketMessagesTotal.WithLabelValues(authorLabel(a)).Inc()
	return c.JSON(http.StatusOK, t)
}

// SetStatus resolves or reopens a ticket.
//
// @Summary      Change ticket status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Ticket ID"
// @Param        body  body      ticketStatusRequest  true  "Open or Resolved"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/tickets/{id}/status [patch]
func (h *TicketHandler) SetStatus(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req ticketStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	t, err := h.tickets.SetStatus(c.Request().Context(), a, c.Param("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// List handles GET /v1/tickets and GET /v1/admin/tickets.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Open or Resolved"
// @Param        limit   query     int     false  "Maximum number of tickets"
// @Success      200     {object}  listResponse[domain.Ticket]
// @Router       /v1/tickets [get]
// @Router       /v1/admin/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	tickets, err := h.tickets.List(c.Request().Context(), a, ports.TicketFilter{
		Status: domain.TicketStatus(c.QueryParam("status")),
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(tickets))
}

// Get returns one ticket with its conversation.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ticket ID"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  errorResponse
// @Router       /v1/tickets/{id} [get]
// @Router       /v1/admin/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	t, err := h.tickets.Get(c.Request().Context(), a, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func authorLabel(a domain.Actor) string {
	if a.IsAdmin() {
		return "support"
	}
	return "client"
}
