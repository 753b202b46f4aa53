package message

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
	// Patients exchange messages with their care team.
	rw := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff, auth.RolePatient))
	rw.POST("/messages", h.Send)
	rw.GET("/messages/:id", h.Get)
	rw.GET("/threads/:threadId/messages", h.ListByThread)
	rw.POST("/messages/:id/read", h.MarkRead)

	del := api.Group("", auth.RequireRole(auth.RoleAdmin))
	del.DELETE("/messages/:id", h.Delete)

	fhirRead := fhirGroup.Group("", auth.RequireRole(auth.RoleAdmin, auth.RolePhysician, auth.RoleStaff))
	fhirRead.GET("/Communication/:id", h.GetCommunication)
}

func (h *Handler) Send(c echo.Context) error {
	var m Message
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid request body"))
	}
	created, err := h.svc.Send(c.Request().Context(), m)
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
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid message id"))
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Message", id.String()))
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListByThread(c echo.Context) error {
	threadID, err := uuid.Parse(c.Param("threadId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid thread id"))
	}
	items, err := h.svc.ListByThread(c.Request().Context(), threadID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid message id"))
	}
	m, err := h.svc.MarkRead(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Message", id.String()))
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid message id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Message", id.String()))
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetCommunication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid communication id"))
	}
	resource, err := h.svc.Communication(c.Request().Context(), id)
	if err != nil {
		var ce *cdesmodels.ConversionError
		if errors.As(err, &ce) {
			return c.JSON(http.StatusUnprocessableEntity, fhir.ErrorOutcome(ce.Error()))
		}
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Communication", id.String()))
	}
	return c.JSON(http.StatusOK, resource)
}
