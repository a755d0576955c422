package handler

import (
	"net/http"
	"strconv"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/dto"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/labstack/echo/v4"
)

type SupportHandler struct {
	support backend.SupportAPI
}

func NewSupportHandler(support backend.SupportAPI) *SupportHandler {
	return &SupportHandler{support: support}
}

func (h *SupportHandler) RegisterRoutes(g *echo.Group, admin *echo.Group) {
	g.GET("/support-tickets", h.ListMyTickets)
	g.POST("/support-tickets", h.CreateTicket)

	admin.GET("/support-tickets", h.ListAllTickets)
	admin.PATCH("/support-tickets/:id/status", h.UpdateTicketStatus)
}

func (h *SupportHandler) ListMyTickets(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	tickets, err := h.support.ListSupportTicketsByNationalID(c.Request().Context(), ident.NationalID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *SupportHandler) CreateTicket(c echo.Context) error {
	ident, ok := session.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req dto.CreateSupportTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Subject == "" || req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject and description are required")
	}

	ticket, err := h.support.CreateSupportTicket(c.Request().Context(), backend.CreateSupportTicketRequest{
		NationalID:  ident.NationalID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (h *SupportHandler) ListAllTickets(c echo.Context) error {
	tickets, err := h.support.ListSupportTickets(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tickets)
}

func (h *SupportHandler) UpdateTicketStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}

	var req dto.UpdateSupportTicketStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.support.UpdateSupportTicketStatus(c.Request().Context(), id, req.Status); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "support ticket updated"})
}
