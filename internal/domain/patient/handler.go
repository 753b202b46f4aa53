package patient

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff))
	read.GET("/patients", h.List)
	read.GET("/patients/:id", h.Get)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician))
	write.POST("/patients", h.Create)
	write.PUT("/patients/:id", h.Update)
	write.DELETE("/patients/:id", h.Delete)

	fhirRead := fhirGroup.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff))
	fhirRead.GET("/Patient/:id", h.GetFHIRPatient)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid request body"))
	}
	created, err := h.svc.Create(c.Request().Context(), p)
	if err != nil {
		var ve *cdesmodels.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome(ve.Field, ve.Rule))
		}
		return c.JSON(http.StatusConflict, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid patient id"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", id.String()))
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	items, total, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid patient id"))
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid request body"))
	}
	p.ID = id
	updated, err := h.svc.Update(c.Request().Context(), p)
	if err != nil {
		var ve *cdesmodels.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome(ve.Field, ve.Rule))
		}
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", id.String()))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid patient id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", id.String()))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetFHIRPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid patient id"))
	}
	resource, err := h.svc.FHIRPatient(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrExportNotConsented) {
			return c.JSON(http.StatusForbidden, fhir.ErrorOutcome(err.Error()))
		}
		var ce *cdesmodels.ConversionError
		if errors.As(err, &ce) {
			return c.JSON(http.StatusUnprocessableEntity, fhir.ErrorOutcome(ce.Error()))
		}
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Patient", id.String()))
	}
	return c.JSON(http.StatusOK, resource)
}
