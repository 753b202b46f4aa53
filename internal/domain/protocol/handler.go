package protocol

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/acidni-llc/cdes-m/internal/platform/auth"
	"github.com/acidni-llc/cdes-m/internal/platform/fhir"
	"github.com/acidni-llc/cdes-m/pkg/cdesmodels"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes exposes the read-only protocol catalog.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff))
	read.GET("/protocols", h.List)
	read.GET("/protocols/:id", h.Get)
	read.GET("/protocols/category/:category", h.ListByCategory)
}

func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": h.svc.All(),
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid protocol id"))
	}
	p, err := h.svc.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("TreatmentProtocol", id.String()))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListByCategory(c echo.Context) error {
	protocols, err := h.svc.ForCategory(c.Param("category"))
	if err != nil {
		var ve *cdesmodels.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome(ve.Field, ve.Rule))
		}
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("TreatmentProtocol", c.Param("category")))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": protocols})
}
