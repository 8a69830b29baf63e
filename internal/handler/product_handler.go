package handler

import (
	"net/http"

	"makeupsales/internal/usecase"
	"makeupsales/internal/viewstate"

	"github.com/labstack/echo/v4"
)

type stockUpdateRequest struct {
	Stock int64 `json:"stock"`
}

// /products
type ProductHandler struct {
	state *viewstate.ProductsState
	uc    *usecase.ProductUsecase
}

// DI
func NewProductHandler(state *viewstate.ProductsState, uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{state: state, uc: uc}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.POST("/products", h.save)
	g.GET("/products/low-stock", h.lowStock)
	g.GET("/products/:id", h.detail)
	g.DELETE("/products/:id", h.delete)
	g.PUT("/products/:id/stock", h.updateStock)
	g.GET("/products/:id/stock-history", h.stockHistory)
}

// ライブビューの現在の状態を返す
func (h *ProductHandler) list(c echo.Context) error {
	return writeState(c, h.state.Current())
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// 作成/置き換え
func (h *ProductHandler) save(c echo.Context) error {
	var req usecase.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.state.SaveProduct(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id})
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.state.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *ProductHandler) lowStock(c echo.Context) error {
	items, err := h.uc.LowStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) updateStock(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req stockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.state.UpdateStock(c.Request().Context(), id, req.Stock); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock updated"})
}

func (h *ProductHandler) stockHistory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	adjs, err := h.uc.StockHistory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, adjs)
}

// Failedのときは503
func writeState[T any](c echo.Context, st viewstate.State[T]) error {
	if st.Status == viewstate.StatusFailed {
		return c.JSON(http.StatusServiceUnavailable, st)
	}
	return c.JSON(http.StatusOK, st)
}
