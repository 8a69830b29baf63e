package handler

import (
	"net/http"

	"makeupsales/internal/viewstate"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	state *viewstate.DashboardState
}

func NewDashboardHandler(state *viewstate.DashboardState) *DashboardHandler {
	return &DashboardHandler{state: state}
}

func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.get)
}

func (h *DashboardHandler) get(c echo.Context) error {
	d := h.state.Current()
	if d.Status == viewstate.StatusFailed {
		return c.JSON(http.StatusServiceUnavailable, d)
	}
	return c.JSON(http.StatusOK, d)
}
