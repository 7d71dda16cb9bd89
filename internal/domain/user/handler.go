package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/auth"
	"github.com/Elijah-Pyers/Final-Project-MVP/pkg/pagination"
)

type Handler struct {
	svc    *Service
	engine *auth.Engine
}

func NewHandler(svc *Service, engine *auth.Engine) *Handler {
	return &Handler{svc: svc, engine: engine}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", h.Me)
	api.POST("/auth/logout", h.Logout)

	api.GET("/users", h.List, auth.Require(h.engine, auth.ActionList, auth.ResourceUser))
	api.POST("/users", h.Create, auth.Require(h.engine, auth.ActionCreate, auth.ResourceUser))
	api.GET("/users/:id", h.Get)
	api.PUT("/users/:id", h.Update)
	api.DELETE("/users/:id", h.Delete, auth.Require(h.engine, auth.ActionDelete, auth.ResourceUser))
}

// tokenResponse is the register/login response body.
type tokenResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) Register(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return apperror.Validation("invalid request body")
	}
	u, token, expiresAt, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{User: u, Token: token, ExpiresAt: expiresAt})
}

func (h *Handler) Login(c echo.Context) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return apperror.Validation("invalid request body")
	}
	u, token, expiresAt, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{User: u, Token: token, ExpiresAt: expiresAt})
}

func (h *Handler) Me(c echo.Context) error {
	ident := auth.IdentityFromContext(c.Request().Context())
	if ident == nil {
		return apperror.Unauthenticated("not authenticated")
	}
	u, err := h.svc.Get(c.Request().Context(), ident.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Logout is stateless: tokens are not tracked server side, so the client
// just discards its copy.
func (h *Handler) Logout(c echo.Context) error {
	if auth.IdentityFromContext(c.Request().Context()) == nil {
		return apperror.Unauthenticated("not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	users, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(users, total, pg.Limit, pg.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return apperror.Validation("invalid request body")
	}
	u, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	if d := h.engine.AuthorizeUser(ident, auth.ActionRead, id, false); !d.Allowed {
		return denial(ident, d)
	}

	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch Patch
	if err := c.Bind(&patch); err != nil {
		return apperror.Validation("invalid request body")
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	if d := h.engine.AuthorizeUser(ident, auth.ActionUpdate, id, patch.ChangesRole()); !d.Allowed {
		return denial(ident, d)
	}

	u, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid id", "id")
	}
	return id, nil
}

func denial(ident *auth.Identity, d auth.Decision) error {
	if ident == nil {
		return apperror.Unauthenticated(d.Reason)
	}
	return apperror.Forbidden(d.Reason)
}
