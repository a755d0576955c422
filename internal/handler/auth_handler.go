package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gakenye8741/ticket-gateway/internal/backend"
	"github.com/Gakenye8741/ticket-gateway/internal/dto"
	"github.com/Gakenye8741/ticket-gateway/internal/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth       backend.AuthAPI
	store      session.Store
	tokens     *session.TokenManager
	sessionTTL time.Duration
}

func NewAuthHandler(auth backend.AuthAPI, store session.Store, tokens *session.TokenManager, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, tokens: tokens, sessionTTL: sessionTTL}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/logout", h.Logout)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	resp, err := h.auth.Login(c.Request().Context(), backend.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}

	now := time.Now()
	sess := &session.Session{
		ID: uuid.New().String(),
		Identity: session.Identity{
			NationalID: resp.User.NationalID,
			Email:      resp.User.Email,
			Role:       resp.User.Role,
		},
		BackendToken: resp.Token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(h.sessionTTL),
	}
	if err := h.store.Create(c.Request().Context(), sess); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	token, err := h.tokens.Issue(sess)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: resp.User})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.NationalID == 0 || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "national_id, email and password are required")
	}

	user, err := h.auth.Register(c.Request().Context(), backend.RegisterRequest{
		NationalID: req.NationalID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenStr := strings.TrimPrefix(auth, "Bearer ")
	if tokenStr == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	sid, err := h.tokens.Parse(tokenStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if err := h.store.Delete(c.Request().Context(), sid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to end session")
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}
