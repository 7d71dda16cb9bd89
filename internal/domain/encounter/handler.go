package encounter

import (
	"net/http"
	"strconv"

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
	api.GET("/encounters", h.List, auth.Require(h.engine, auth.ActionList, auth.ResourceEncounter))
	api.GET("/encounters/:id", h.Get, auth.Require(h.engine, auth.ActionRead, auth.ResourceEncounter))
	// Create authorizes inside the handler: field validation runs first so a
	// malformed request is a 400 for any caller.
	api.POST("/encounters", h.Create)
	api.PUT("/encounters/:id", h.Update, auth.Require(h.engine, auth.ActionUpdate, auth.ResourceEncounter))
	api.DELETE("/encounters/:id", h.Delete, auth.Require(h.engine, auth.ActionDelete, auth.ResourceEncounter))
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)

	var f Filter
	if v := c.QueryParam("patient_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return apperror.Validation("invalid patient_id", "patient_id")
		}
		f.PatientID = id
	}
	if v := c.QueryParam("provider_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return apperror.Validation("invalid provider_id", "provider_id")
		}
		f.ProviderID = id
	}

	encs, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(encs, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	enc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enc)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := in.Validate(); err != nil {
		return err
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	if d := h.engine.Authorize(ident, auth.ActionCreate, auth.ResourceEncounter); !d.Allowed {
		if ident == nil {
			return apperror.Unauthenticated(d.Reason)
		}
		return apperror.Forbidden(d.Reason)
	}

	enc, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, enc)
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
	res, err := h.svc.Update(c.Request().Context(), ident.Role, id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
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
