package handler

import (
	"net/http"

	"makeupsales/internal/usecase"
	"makeupsales/internal/viewstate"

	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	state *viewstate.CustomersState
}

func NewCustomerHandler(state *viewstate.CustomersState) *CustomerHandler {
	return &CustomerHandler{state: state}
}

func (h *CustomerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/customers", h.list)
	g.POST("/customers", h.save)
	g.DELETE("/customers/:id", h.delete)
}

func (h *CustomerHandler) list(c echo.Context) error {
	return writeState(c, h.state.Current())
}

func (h *CustomerHandler) save(c echo.Context) error {
	var req usecase.CustomerInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.state.SaveCustomer(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id})
}

func (h *CustomerHandler) delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.state.DeleteCustomer(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
