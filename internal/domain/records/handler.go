package records

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments/:id", h.GetVisit)
	api.GET("/treatments/:id", h.GetTreatment)
	api.GET("/sleep-studies/:id", h.GetSleepStudy)
	api.GET("/insurance/:id", h.GetInsurance)
}

func recordID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, name+" not found")
	}
	return id, nil
}

func (h *Handler) GetVisit(c echo.Context) error {
	id, err := recordID(c, "appointment")
	if err != nil {
		return err
	}
	v, err := h.svc.GetVisit(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetTreatment(c echo.Context) error {
	id, err := recordID(c, "treatment")
	if err != nil {
		return err
	}
	t, err := h.svc.GetTreatment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) GetSleepStudy(c echo.Context) error {
	id, err := recordID(c, "sleep study")
	if err != nil {
		return err
	}
	s, err := h.svc.GetSleepStudy(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "sleep study not found")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) GetInsurance(c echo.Context) error {
	id, err := recordID(c, "insurance")
	if err != nil {
		return err
	}
	i, err := h.svc.GetInsurance(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "insurance not found")
	}
	return c.JSON(http.StatusOK, i)
}
