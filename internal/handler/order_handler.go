package handler

import (
	"net/http"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/usecase"
	"makeupsales/internal/viewstate"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	state    *viewstate.OrdersState
	uc       *usecase.OrderUsecase
	products *usecase.ProductUsecase
}

func NewOrderHandler(state *viewstate.OrdersState, uc *usecase.OrderUsecase, products *usecase.ProductUsecase) *OrderHandler {
	return &OrderHandler{state: state, uc: uc, products: products}
}

// unit_priceを省略したら今の商品価格を使う
type orderItemRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type orderCreateRequest struct {
	CustomerID int64              `json:"customer_id"`
	Items      []orderItemRequest `json:"items"`
}

type orderStatusUpdateRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.POST("/orders", h.create)
	g.GET("/orders/:id", h.detail)
	g.GET("/orders/:id/items", h.items)
	g.PUT("/orders/:id/status", h.updateStatus)
	g.DELETE("/orders/:id", h.delete)
}

func (h *OrderHandler) list(c echo.Context) error {
	return writeState(c, h.state.Current())
}

func (h *OrderHandler) create(c echo.Context) error {
	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		in := usecase.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
		if it.UnitPrice != nil {
			in.UnitPrice = *it.UnitPrice
		} else if it.ProductID > 0 {
			p, err := h.products.GetProduct(ctx, it.ProductID)
			if err != nil {
				return writeError(c, err)
			}
			in.UnitPrice = p.Price
		}
		items = append(items, in)
	}

	id, err := h.state.CreateOrder(ctx, req.CustomerID, items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) items(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	items, err := h.state.LoadOrderItems(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req orderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	updated, err := h.state.UpdateOrderStatus(c.Request().Context(), model.Order{ID: id}, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.state.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
