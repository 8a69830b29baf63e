package viewstate

import (
	"context"
	"log/slog"
	"sync"

	"makeupsales/internal/domain/model"
	"makeupsales/internal/repository"
	"makeupsales/internal/usecase"
)

// OrdersState は注文一覧（顧客つき・新しい順）と、選択中の注文の明細を持つ
type OrdersState struct {
	*live[model.OrderWithCustomer]
	orders repository.OrderRepository
	uc     *usecase.OrderUsecase

	selMu         sync.RWMutex
	selectedID    int64
	selectedItems []model.OrderItem
}

func NewOrdersState(orders repository.OrderRepository, uc *usecase.OrderUsecase, log *slog.Logger) *OrdersState {
	return &OrdersState{
		live:          newLive[model.OrderWithCustomer]("orders", log),
		orders:        orders,
		uc:            uc,
		selectedItems: []model.OrderItem{},
	}
}

func (s *OrdersState) Start(ctx context.Context) error {
	return s.start(ctx, s.orders.Subscribe)
}

func (s *OrdersState) CreateOrder(ctx context.Context, customerID int64, items []usecase.OrderItemInput) (int64, error) {
	id, err := s.uc.CreateOrderWithItems(ctx, customerID, items)
	if err != nil {
		s.intentFailed("create_order", err)
	}
	return id, err
}

// 選択中の注文を消したら明細表示も空にする
func (s *OrdersState) DeleteOrder(ctx context.Context, orderID int64) error {
	if err := s.uc.DeleteOrderWithItems(ctx, orderID); err != nil {
		s.intentFailed("delete_order", err)
		return err
	}

	s.selMu.Lock()
	if s.selectedID == orderID {
		s.selectedID = 0
		s.selectedItems = []model.OrderItem{}
	}
	s.selMu.Unlock()
	return nil
}

func (s *OrdersState) UpdateOrderStatus(ctx context.Context, order model.Order, status model.OrderStatus) (model.Order, error) {
	updated, err := s.uc.UpdateOrderStatus(ctx, order, status)
	if err != nil {
		s.intentFailed("update_order_status", err)
	}
	return updated, err
}

// LoadOrderItems は明細を読んで選択中として持つ。失敗したら空にする
func (s *OrdersState) LoadOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items, err := s.uc.GetItemsForOrder(ctx, orderID)

	s.selMu.Lock()
	defer s.selMu.Unlock()
	s.selectedID = orderID
	if err != nil {
		s.intentFailed("load_order_items", err)
		s.selectedItems = []model.OrderItem{}
		return nil, err
	}
	s.selectedItems = items
	return append([]model.OrderItem{}, items...), nil
}

func (s *OrdersState) SelectedItems() (int64, []model.OrderItem) {
	s.selMu.RLock()
	defer s.selMu.RUnlock()
	return s.selectedID, append([]model.OrderItem{}, s.selectedItems...)
}
