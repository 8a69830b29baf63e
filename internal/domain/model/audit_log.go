package model

import "time"

// 注文削除、ステータス更新、在庫修正など。
type AuditAction string

const (
	//在庫を手動で更新した操作。
	AuditActionUpdateStock AuditAction = "UPDATE_STOCK"
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//注文を明細ごと削除した操作。在庫は戻らない
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
)

// 何に対する操作か
type AuditResourceType string

const (
	//商品に対する操作。
	AuditResourceProduct AuditResourceType = "product"

	//注文に対する操作。
	AuditResourceOrder AuditResourceType = "order"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。未ログインの内部処理は0
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//JSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
