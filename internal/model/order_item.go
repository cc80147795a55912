package model

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项。商品名、单价、采集 schema 均在下单时快照，此后不可变。
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID   uint `gorm:"not null;index" json:"order_id"`
	ProductID uint `gorm:"not null;index" json:"product_id"`

	ProductName string `gorm:"size:128;not null" json:"product_name"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"` // 分
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`

	// RequirementSchema 为 NULL 表示该项无需采集，不产生槽位。
	RequirementSchema RequirementSchema `gorm:"type:json" json:"requirement_schema,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }

// NeedsCollection 判断该订单项是否要求买家提交数据。
func (it OrderItem) NeedsCollection() bool { return !it.RequirementSchema.Empty() }
