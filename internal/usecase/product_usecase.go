package usecase

import (
	"context"
	"strings"

	"makeupsales/internal/domain/model"
	repo "makeupsales/internal/repository"
	"makeupsales/internal/validator"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	tx                repo.TransactionManager
	productRepo       repo.ProductRepository
	inventoryRepo     repo.InventoryRepository
	lowStockThreshold int64
	clock             Clock
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	lowStockThreshold int64,
) *ProductUsecase {
	return &ProductUsecase{
		tx:                tx,
		productRepo:       productRepo,
		inventoryRepo:     inventoryRepo,
		lowStockThreshold: lowStockThreshold,
		clock:             SystemClock{},
	}
}

// 作成/置き換えの入力。IDが0なら新規
type ProductInput struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Brand    *string         `json:"brand"`
	Category *string         `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	ImageRef *string         `json:"image_ref"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return []model.Product{}, persistence(err)
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, invalidArgument("invalid product id")
	}
	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, classify(err, "product not found")
	}
	return p, nil
}

func (u *ProductUsecase) SaveProduct(ctx context.Context, in ProductInput) (int64, error) {
	if in.ID < 0 {
		return 0, invalidArgument("invalid product id")
	}
	if err := validator.Product(in.Name, in.Price, in.Stock); err != nil {
		return 0, invalidInput(err)
	}

	id, err := u.productRepo.Upsert(ctx, model.Product{
		ID:       in.ID,
		Name:     strings.TrimSpace(in.Name),
		Brand:    validator.OptionalString(in.Brand),
		Category: validator.OptionalString(in.Category),
		Price:    in.Price,
		Stock:    in.Stock,
		ImageRef: validator.OptionalString(in.ImageRef),
	})
	if err != nil {
		return 0, persistence(err)
	}
	return id, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return invalidArgument("invalid product id")
	}
	return classify(u.productRepo.Delete(ctx, productID), "product not found")
}

// 在庫が閾値以下の商品
func (u *ProductUsecase) LowStock(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListLowStock(ctx, u.lowStockThreshold)
	if err != nil {
		return []model.Product{}, persistence(err)
	}
	return items, nil
}

// 在庫を手動で現在値に合わせる。履歴と監査ログも同じTxで残す
func (u *ProductUsecase) UpdateStock(ctx context.Context, productID int64, newStock int64) error {
	if productID <= 0 {
		return invalidArgument("invalid product id")
	}
	if err := validator.Stock(newStock); err != nil {
		return invalidInput(err)
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//変更前の在庫（before）
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return classify(err, "product not found")
		}

		if err := r.Inventory().SetStock(ctx, productID, newStock); err != nil {
			return classify(err, "product not found")
		}

		now := u.clock.Now()
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: productID,
			Delta:     newStock - p.Stock,
			Reason:    model.AdjustmentReasonManual,
			CreatedAt: now,
		}); err != nil {
			return persistence(err)
		}

		before, err := auditJSON(map[string]int64{"stock": p.Stock})
		if err != nil {
			return err
		}
		after, err := auditJSON(map[string]int64{"stock": newStock})
		if err != nil {
			return err
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorFrom(ctx),
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   before,
			AfterJSON:    after,
			CreatedAt:    now,
		}); err != nil {
			return persistence(err)
		}
		return nil
	})
	return classify(err, "product not found")
}

// 在庫変動の履歴（新しい順）
func (u *ProductUsecase) StockHistory(ctx context.Context, productID int64) ([]model.InventoryAdjustment, error) {
	if productID <= 0 {
		return []model.InventoryAdjustment{}, invalidArgument("invalid product id")
	}
	adjs, err := u.inventoryRepo.ListAdjustments(ctx, productID)
	if err != nil {
		return []model.InventoryAdjustment{}, persistence(err)
	}
	return adjs, nil
}
