package handler

import (
	"net/http"
	"strconv"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/dto"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	venues service.VenueService
}

func NewVenueHandler(venues service.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

func (h *VenueHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.GET("/venues", h.ListVenues)

	admin.POST("/venues", h.CreateVenue)
	admin.PUT("/venues/:id", h.UpdateVenue)
	admin.PATCH("/venues/:id/status", h.UpdateVenueStatus)
	admin.DELETE("/venues/:id", h.DeleteVenue)
}

func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.venues.ListVenues(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var req backend.CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	venue, err := h.venues.CreateVenue(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, venue)
}

func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	var req backend.UpdateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.venues.UpdateVenue(c.Request().Context(), id, req); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "venue updated"})
}

func (h *VenueHandler) UpdateVenueStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	var req dto.UpdateVenueStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status != "available" && req.Status != "booked" {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be available or booked")
	}

	if err := h.venues.UpdateVenueStatus(c.Request().Context(), id, req.Status); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "venue status updated"})
}

func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	if err := h.venues.DeleteVenue(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "venue deleted"})
}
