package handler

import (
	"net/http"
	"strconv"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/cache"
	"github.com/Gakenye8741/ticket-gateway/internal/dto"
	"github.com/Gakenye8741/ticket-gateway/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	events      service.EventService
	ticketTypes backend.TicketTypeAPI
	media       backend.MediaAPI
	cache       cache.TagCache
}

func NewEventHandler(events service.EventService, ticketTypes backend.TicketTypeAPI, media backend.MediaAPI, tagCache cache.TagCache) *EventHandler {
	return &EventHandler{events: events, ticketTypes: ticketTypes, media: media, cache: tagCache}
}

func (h *EventHandler) RegisterRoutes(public *echo.Group, admin *echo.Group) {
	public.GET("/events", h.ListEvents)
	public.GET("/events/:id", h.GetEvent)
	public.GET("/events/:id/ticket-types", h.ListTicketTypes)
	public.GET("/events/:id/media", h.ListMedia)

	admin.POST("/events", h.CreateEvent)
	admin.PUT("/events/:id", h.UpdateEvent)
	admin.DELETE("/events/:id", h.DeleteEvent)
	admin.POST("/ticket-types", h.CreateTicketType)
	admin.PUT("/ticket-types/:id", h.UpdateTicketType)
	admin.DELETE("/ticket-types/:id", h.DeleteTicketType)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		views []service.EventView
		err   error
	)
	switch {
	case c.QueryParam("title") != "":
		views, err = h.events.SearchByTitle(ctx, c.QueryParam("title"))
	case c.QueryParam("category") != "":
		views, err = h.events.SearchByCategory(ctx, c.QueryParam("category"))
	default:
		views, err = h.events.ListEvents(ctx)
	}
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	view, err := h.events.GetEvent(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *EventHandler) ListTicketTypes(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	ticketTypes, err := h.ticketTypes.ListTicketTypesByEventID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, ticketTypes)
}

func (h *EventHandler) ListMedia(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	media, err := h.media.ListMediaByEventID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, media)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req backend.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Date == "" || req.Time == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title, date and time are required")
	}

	event, err := h.events.CreateEvent(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req backend.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.events.UpdateEvent(c.Request().Context(), id, req); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "event updated"})
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	if err := h.events.DeleteEvent(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "event deleted"})
}

func (h *EventHandler) CreateTicketType(c echo.Context) error {
	var req backend.CreateTicketTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == 0 || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "eventId and name are required")
	}

	ticketType, err := h.ticketTypes.CreateTicketType(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	_ = h.cache.InvalidateTag(c.Request().Context(), cache.TagTicketTypes)
	return c.JSON(http.StatusCreated, ticketType)
}

func (h *EventHandler) UpdateTicketType(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket type id")
	}

	var req backend.UpdateTicketTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.ticketTypes.UpdateTicketType(c.Request().Context(), id, req); err != nil {
		return toHTTPError(err)
	}
	_ = h.cache.InvalidateTag(c.Request().Context(), cache.TagTicketTypes)
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "ticket type updated"})
}

func (h *EventHandler) DeleteTicketType(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket type id")
	}

	if err := h.ticketTypes.DeleteTicketType(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	_ = h.cache.InvalidateTag(c.Request().Context(), cache.TagTicketTypes)
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "ticket type deleted"})
}
