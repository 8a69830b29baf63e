package viewstate

import (
	"sync"

	"makeupsales/internal/domain/model"

	"github.com/shopspring/decimal"
)

// グラフに出す直近の注文数
const recentOrderCount = 5

// Dashboard は3つのライブビューから計算する集計値
type Dashboard struct {
	Status           Status            `json:"status"`
	TotalSales       decimal.Decimal   `json:"total_sales"`
	PendingOrders    int               `json:"pending_orders"`
	Customers        int               `json:"customers"`
	LowStockProducts int               `json:"low_stock_products"`
	RecentTotals     []decimal.Decimal `json:"recent_totals"`
	Error            string            `json:"error,omitempty"`
}

// DashboardState は商品・顧客・注文のどれかが変わるたびに集計し直す
type DashboardState struct {
	products  *ProductsState
	customers *CustomersState
	orders    *OrdersState
	lowStock  int64

	mu      sync.RWMutex
	current Dashboard
}

// lowStock 以下の在庫を在庫少として数える
func NewDashboardState(products *ProductsState, customers *CustomersState, orders *OrdersState, lowStock int64) *DashboardState {
	d := &DashboardState{
		products:  products,
		customers: customers,
		orders:    orders,
		lowStock:  lowStock,
	}
	products.OnChange(func(State[model.Product]) { d.recompute() })
	customers.OnChange(func(State[model.Customer]) { d.recompute() })
	orders.OnChange(func(State[model.OrderWithCustomer]) { d.recompute() })
	d.recompute()
	return d
}

func (d *DashboardState) Current() Dashboard {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := d.current
	out.RecentTotals = append([]decimal.Decimal{}, d.current.RecentTotals...)
	return out
}

// 3つのビューをその時点の値で読み直す。通知の順番に依存しない
func (d *DashboardState) recompute() {
	d.mu.Lock()
	defer d.mu.Unlock()

	products := d.products.Current()
	customers := d.customers.Current()
	orders := d.orders.Current()

	next := Dashboard{
		Status:       combineStatus(products.Status, customers.Status, orders.Status),
		TotalSales:   decimal.Zero,
		RecentTotals: []decimal.Decimal{},
	}
	if next.Status != StatusReady {
		if next.Status == StatusFailed {
			next.Error = "failed to load"
		}
		d.current = next
		return
	}

	for _, o := range orders.Items {
		switch o.Order.Status {
		case model.OrderStatusPaid:
			next.TotalSales = next.TotalSales.Add(o.Order.Total)
		case model.OrderStatusPending:
			next.PendingOrders++
		}
	}
	next.Customers = len(customers.Items)
	for _, p := range products.Items {
		if p.Stock <= d.lowStock {
			next.LowStockProducts++
		}
	}

	//一覧は新しい順なので、先頭から取って古い順に並べ替える
	n := min(recentOrderCount, len(orders.Items))
	for i := n - 1; i >= 0; i-- {
		next.RecentTotals = append(next.RecentTotals, orders.Items[i].Order.Total)
	}

	d.current = next
}

func combineStatus(statuses ...Status) Status {
	out := StatusReady
	for _, s := range statuses {
		switch s {
		case StatusFailed:
			return StatusFailed
		case StatusLoading:
			out = StatusLoading
		}
	}
	return out
}
