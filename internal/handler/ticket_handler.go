package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ticketdesk/internal/middleware"
	"ticketdesk/internal/model"
	"ticketdesk/internal/service"
)

// TicketHandler handles ticket endpoints.
type TicketHandler struct {
	svc service.TicketService
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// CreateTicketRequest represents a new ticket. The reporter is always the
// caller.
type CreateTicketRequest struct {
	Title       string                `json:"title" validate:"required,min=1,max=255"`
	Description string                `json:"description" validate:"required,min=1"`
	Priority    *model.TicketPriority `json:"priority" validate:"omitnil,oneof=low medium high urgent"`
	CategoryID  *uuid.UUID            `json:"categoryId" swaggertype:"string" format:"uuid"`
}

// UpdateTicketRequest is a partial ticket update. categoryId and
// assigneeId accept null to clear the reference.
type UpdateTicketRequest struct {
	Title       *string               `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string               `json:"description" validate:"omitnil,min=1"`
	Status      *model.TicketStatus   `json:"status" validate:"omitnil,oneof=open in_progress resolved closed"`
	Priority    *model.TicketPriority `json:"priority" validate:"omitnil,oneof=low medium high urgent"`
	CategoryID  model.OptionalID      `json:"categoryId" swaggertype:"string" format:"uuid"`
	AssigneeID  model.OptionalID      `json:"assigneeId" swaggertype:"string" format:"uuid"`
}

// ForActor narrows the request to the fields the actor may change.
// Non-admins keep only title and description.
func (r UpdateTicketRequest) ForActor(actor *model.User) service.TicketUpdate {
	if !actor.IsAdmin() {
		return service.ReporterUpdate{Title: r.Title, Description: r.Description}
	}
	return service.AdminUpdate{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		CategoryID:  r.CategoryID,
		AssigneeID:  r.AssigneeID,
	}
}

// TicketListResponse wraps the ticket list.
type TicketListResponse struct {
	Tickets []model.TicketSummary `json:"tickets"`
}

// TicketResponse wraps a single ticket.
type TicketResponse struct {
	Ticket *model.Ticket `json:"ticket"`
}

// TicketDetailResponse wraps a ticket with its people resolved.
type TicketDetailResponse struct {
	Ticket *model.TicketDetail `json:"ticket"`
}

// DeleteTicketResponse echoes the removed ticket.
type DeleteTicketResponse struct {
	Message string        `json:"message"`
	Ticket  *model.Ticket `json:"ticket"`
}

// TimelineResponse wraps a ticket's timeline.
type TimelineResponse struct {
	Timeline []model.TimelineEntry `json:"timeline"`
}

// ListTickets godoc
// @Summary List tickets
// @Description Admins see every ticket, other users only their own.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TicketListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c echo.Context) error {
	tickets, err := h.svc.List(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TicketListResponse{Tickets: tickets})
}

// CreateTicket godoc
// @Summary Create ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTicketRequest true "Ticket"
// @Success 201 {object} TicketResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req CreateTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, TicketResponse{Ticket: ticket})
}

// GetTicket godoc
// @Summary Get ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} TicketDetailResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c echo.Context) error {
	ticket, err := h.svc.Get(c.Request().Context(), middleware.CurrentUser(c), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TicketDetailResponse{Ticket: ticket})
}

// UpdateTicket godoc
// @Summary Update ticket
// @Description Reporters may change title and description; other fields are ignored unless the caller is an admin.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} TicketResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	var req UpdateTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor := middleware.CurrentUser(c)
	ticket, err := h.svc.Update(c.Request().Context(), actor, pathID(c), req.ForActor(actor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TicketResponse{Ticket: ticket})
}

// DeleteTicket godoc
// @Summary Delete ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} DeleteTicketResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	ticket, err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeleteTicketResponse{Message: "Ticket deleted", Ticket: ticket})
}

// GetTimeline godoc
// @Summary Ticket timeline
// @Description Events newest first. A missing ticket has an empty timeline.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} TimelineResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /tickets/{id}/timeline [get]
func (h *TicketHandler) GetTimeline(c echo.Context) error {
	timeline, err := h.svc.Timeline(c.Request().Context(), middleware.CurrentUser(c), pathID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TimelineResponse{Timeline: timeline})
}
