package usecase

import (
	"context"
	"errors"
	"fmt"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"
	"makeupsales/internal/validator"

	"github.com/shopspring/decimal"
)

// OrderUsecase は注文と明細をひとまとまりで作成・削除する。
// 在庫の減算も同じトランザクションで行う。
//
// 注文削除とCANCELEDへの変更では在庫を戻さない（売上確定の扱い）。
type OrderUsecase struct {
	tx          repo.TransactionManager
	orders      repo.OrderRepository
	items       repo.OrderItemRepository
	clock       Clock
	strictStock bool
	recorder    OperationRecorder
}

type OrderOption func(*OrderUsecase)

// 在庫が足りない注文を拒否する
func WithStrictStock(strict bool) OrderOption {
	return func(u *OrderUsecase) { u.strictStock = strict }
}

func WithRecorder(rec OperationRecorder) OrderOption {
	return func(u *OrderUsecase) {
		if rec != nil {
			u.recorder = rec
		}
	}
}

func WithClock(c Clock) OrderOption {
	return func(u *OrderUsecase) {
		if c != nil {
			u.clock = c
		}
	}
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, items repo.OrderItemRepository, opts ...OrderOption) *OrderUsecase {
	u := &OrderUsecase{
		tx:       tx,
		orders:   orders,
		items:    items,
		clock:    SystemClock{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// 単価は呼び出し側が注文時点の商品価格を入れる
type OrderItemInput struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderDetail struct {
	Order    model.Order       `json:"order"`
	Customer *model.Customer   `json:"customer"`
	Items    []model.OrderItem `json:"items"`
}

// 合計と明細行を作る。subtotal = quantity * unit_price
func buildOrderItems(in []OrderItemInput) (decimal.Decimal, []model.OrderItem) {
	total := decimal.Zero
	rows := make([]model.OrderItem, 0, len(in))
	for _, it := range in {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		total = total.Add(subtotal)
		rows = append(rows, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  subtotal,
		})
	}
	return total, rows
}

func (u *OrderUsecase) CreateOrderWithItems(ctx context.Context, customerID int64, items []OrderItemInput) (int64, error) {
	orderID, err := u.createOrderWithItems(ctx, customerID, items)
	u.recorder.Record("create", err)
	return orderID, err
}

func (u *OrderUsecase) createOrderWithItems(ctx context.Context, customerID int64, items []OrderItemInput) (int64, error) {
	if customerID <= 0 {
		return 0, invalidArgument("invalid customer_id")
	}
	if len(items) == 0 {
		return 0, invalidArgument("items required")
	}
	for i, it := range items {
		if err := validator.OrderLine(it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return 0, invalidArgument(fmt.Sprintf("items[%d]: %s", i, err.Error()))
		}
	}

	total, rows := buildOrderItems(items)
	for i, it := range rows {
		if err := validator.Amount("subtotal", it.Subtotal); err != nil {
			return 0, invalidArgument(fmt.Sprintf("items[%d]: %s", i, err.Error()))
		}
	}
	if err := validator.Amount("total", total); err != nil {
		return 0, invalidInput(err)
	}
	var orderID int64

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, customerID); err != nil {
			return classify(err, "customer not found")
		}

		now := u.clock.Now()
		id, err := r.Orders().Create(ctx, model.Order{
			CustomerID: customerID,
			Status:     model.OrderStatusPending,
			Total:      total,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return persistence(err)
		}

		//明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, id, rows); err != nil {
			return persistence(err)
		}

		//在庫減算
		for _, it := range rows {
			if err := u.decreaseStock(ctx, r, it); err != nil {
				return err
			}

			oid := id
			if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
				ProductID: it.ProductID,
				OrderID:   &oid,
				Delta:     -it.Quantity,
				Reason:    model.AdjustmentReasonOrder,
				CreatedAt: now,
			}); err != nil {
				return persistence(err)
			}
		}

		orderID = id
		return nil
	})
	if err != nil {
		return 0, classify(err, "not found")
	}
	return orderID, nil
}

func (u *OrderUsecase) decreaseStock(ctx context.Context, r repo.TxRepos, it model.OrderItem) error {
	notFoundMsg := fmt.Sprintf("product %d not found", it.ProductID)

	if !u.strictStock {
		err := r.Inventory().DecreaseStock(ctx, it.ProductID, it.Quantity)
		if errors.Is(err, repo.ErrStockOutOfRange) {
			return invalidArgument(fmt.Sprintf("stock out of range for product %d", it.ProductID))
		}
		return classify(err, notFoundMsg)
	}

	ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
	if err != nil {
		return classify(err, notFoundMsg)
	}
	if !ok {
		return invalidArgument(fmt.Sprintf("insufficient stock for product %d", it.ProductID))
	}
	return nil
}

// 明細→注文の順に消す。在庫は戻さない
func (u *OrderUsecase) DeleteOrderWithItems(ctx context.Context, orderID int64) error {
	err := u.deleteOrderWithItems(ctx, orderID)
	u.recorder.Record("delete", err)
	return err
}

func (u *OrderUsecase) deleteOrderWithItems(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return invalidArgument("invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return classify(err, "order not found")
		}

		removed, err := r.OrderItems().DeleteByOrderID(ctx, orderID)
		if err != nil {
			return persistence(err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return classify(err, "order not found")
		}

		before, err := auditJSON(map[string]any{
			"status":     o.Status,
			"total":      o.Total,
			"item_count": removed,
		})
		if err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorFrom(ctx),
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   before,
			AfterJSON:    "{}",
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return persistence(err)
		}
		return nil
	})
	return classify(err, "order not found")
}

// statusだけを書き換える。遷移の制限はなく、明細と在庫はそのまま
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, order model.Order, newStatus model.OrderStatus) (model.Order, error) {
	updated, err := u.updateOrderStatus(ctx, order, newStatus)
	u.recorder.Record("update_status", err)
	return updated, err
}

func (u *OrderUsecase) updateOrderStatus(ctx context.Context, order model.Order, newStatus model.OrderStatus) (model.Order, error) {
	if order.ID <= 0 {
		return model.Order{}, invalidArgument("invalid id")
	}
	if !newStatus.Valid() {
		return model.Order{}, invalidArgument("invalid status")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		current, err := r.Orders().FindByID(ctx, order.ID)
		if err != nil {
			return classify(err, "order not found")
		}

		// すでに同じなら何もしない
		if current.Status == newStatus {
			out = current
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, newStatus); err != nil {
			return classify(err, "order not found")
		}

		before, err := auditJSON(map[string]any{"status": current.Status})
		if err != nil {
			return err
		}
		after, err := auditJSON(map[string]any{"status": newStatus})
		if err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorFrom(ctx),
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   order.ID,
			BeforeJSON:   before,
			AfterJSON:    after,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return persistence(err)
		}

		current.Status = newStatus
		out = current
		return nil
	})
	if err != nil {
		return model.Order{}, classify(err, "order not found")
	}
	return out, nil
}

// 作成順。なければ空
func (u *OrderUsecase) GetItemsForOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if orderID <= 0 {
		return []model.OrderItem{}, invalidArgument("invalid id")
	}
	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return []model.OrderItem{}, persistence(err)
	}
	return items, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]model.OrderWithCustomer, error) {
	orders, err := u.orders.ListWithCustomer(ctx)
	if err != nil {
		return []model.OrderWithCustomer{}, persistence(err)
	}
	return orders, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderDetail, error) {
	if orderID <= 0 {
		return OrderDetail{}, invalidArgument("invalid id")
	}

	var out OrderDetail
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return classify(err, "order not found")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return persistence(err)
		}

		out = OrderDetail{Order: o, Items: items}
		c, err := r.Customers().FindByID(ctx, o.CustomerID)
		switch {
		case err == nil:
			out.Customer = &c
		case !errors.Is(err, repo.ErrNotFound):
			return persistence(err)
		}
		return nil
	})
	if err != nil {
		return OrderDetail{}, classify(err, "order not found")
	}
	return out, nil
}
