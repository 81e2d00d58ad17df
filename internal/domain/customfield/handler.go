package customfield

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nsitapara/stellarcare/internal/platform/auth"
	"github.com/nsitapara/stellarcare/internal/platform/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/custom-field-definitions", h.ListDefinitions)
	api.POST("/custom-field-definitions", h.CreateDefinition)
	api.GET("/custom-field-definitions/assigned", h.ListAssigned)
	api.GET("/custom-field-definitions/:id", h.GetDefinition)
	api.PUT("/custom-field-definitions/:id", h.UpdateDefinition)
	api.PATCH("/custom-field-definitions/:id", h.UpdateDefinition)
	api.DELETE("/custom-field-definitions/:id", h.DeleteDefinition)
	api.POST("/custom-field-definitions/:id/assign", h.Assign)
	api.DELETE("/custom-field-definitions/:id/assign", h.Unassign)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}

func (h *Handler) CreateDefinition(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var d Definition
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDefinition(c.Request().Context(), &d, userID); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, verr.Fields)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDefinition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.GetDefinition(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "custom field definition not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDefinition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	existing, err := h.svc.GetDefinition(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "custom field definition not found")
	}
	d := *existing
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.UpdateDefinition(c.Request().Context(), &d); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, verr.Fields)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDefinition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.svc.GetDefinition(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "custom field definition not found")
	}
	if err := h.svc.DeleteDefinition(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDefinitions(c echo.Context) error {
	items, err := h.svc.ListDefinitions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Definition{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAssigned(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListAssigned(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Definition{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Assign(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.svc.GetDefinition(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "custom field definition not found")
	}
	if err := h.svc.AssignToUser(c.Request().Context(), id, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) Unassign(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.svc.GetDefinition(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "custom field definition not found")
	}
	if err := h.svc.UnassignFromUser(c.Request().Context(), id, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}
