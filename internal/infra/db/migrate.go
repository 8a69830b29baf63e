package db

import (
	"errors"
	"fmt"
	"time"

	"makeupsales/internal/domain/model"

	"gorm.io/gorm"
)

// CurrentSchemaVersion
//
//	1: products / customers / orders / order_items
//	2: products.image_ref
//	3: users / audit_logs / inventory_adjustments
const CurrentSchemaVersion = 3

// ErrSchemaTooNew は新しいバージョンで作られたDBを開いたとき
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

func allModels() []any {
	return []any{
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.User{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	}
}

// Migrate は追加だけのマイグレーションを流す。
// AutoMigrateは列を消さないので古い行はそのまま読める。
// FK制約は張らない（以前のデータを弾かないため）
func Migrate(gdb *gorm.DB) (int, error) {
	if err := gdb.AutoMigrate(&model.SchemaVersion{}); err != nil {
		return 0, fmt.Errorf("migrate schema_versions: %w", err)
	}

	current, err := SchemaVersion(gdb)
	if err != nil {
		return 0, err
	}
	if current > CurrentSchemaVersion {
		return current, fmt.Errorf("%w: db=%d build=%d", ErrSchemaTooNew, current, CurrentSchemaVersion)
	}

	if err := gdb.AutoMigrate(allModels()...); err != nil {
		return current, fmt.Errorf("auto migrate: %w", err)
	}

	if current < CurrentSchemaVersion {
		now := time.Now()
		for v := current + 1; v <= CurrentSchemaVersion; v++ {
			if err := gdb.Create(&model.SchemaVersion{Version: v, AppliedAt: now}).Error; err != nil {
				return current, fmt.Errorf("record schema version %d: %w", v, err)
			}
		}
	}
	return CurrentSchemaVersion, nil
}

// SchemaVersion は適用済みの最大バージョン。未作成なら0
func SchemaVersion(gdb *gorm.DB) (int, error) {
	var v int64
	row := gdb.Model(&model.SchemaVersion{}).Select("COALESCE(MAX(version), 0)").Row()
	if err := row.Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v), nil
}
