package efficacy

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

func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff))
	read.GET("/efficacy-reports/:id", h.Get)
	read.GET("/patients/:patientId/efficacy-reports", h.ListByPatient)
	read.GET("/recommendations/:recommendationId/efficacy-reports", h.ListByRecommendation)

	// Patients submit their own reports.
	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff, auth.RolePatient))
	write.POST("/efficacy-reports", h.Create)

	del := api.Group("", auth.RequireRole(auth.RoleAdmin))
	del.DELETE("/efficacy-reports/:id", h.Delete)

	fhirRead := fhirGroup.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff))
	fhirRead.GET("/Observation/:id", h.GetObservation)
}

func (h *Handler) Create(c echo.Context) error {
	var r Report
	if err := c.Bind(&r); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid request body"))
	}
	created, err := h.svc.Create(c.Request().Context(), r)
	if err != nil {
		var ve *cdesmodels.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome(ve.Field, ve.Rule))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid report id"))
	}
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("EfficacyReport", id.String()))
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid patient id"))
	}
	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) ListByRecommendation(c echo.Context) error {
	recommendationID, err := uuid.Parse(c.Param("recommendationId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid recommendation id"))
	}
	items, err := h.svc.ListByRecommendation(c.Request().Context(), recommendationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid report id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("EfficacyReport", id.String()))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetObservation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid observation id"))
	}
	resource, err := h.svc.Observation(c.Request().Context(), id)
	if err != nil {
		var ce *cdesmodels.ConversionError
		if errors.As(err, &ce) {
			return c.JSON(http.StatusUnprocessableEntity, fhir.ErrorOutcome(ce.Error()))
		}
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Observation", id.String()))
	}
	return c.JSON(http.StatusOK, resource)
}
