package model

import (
	"time"

	"gorm.io/gorm"
)

// Product 目录商品：名称、价格、数据采集 schema。
// schema 在这里只做编辑期校验；下单时整体快照到订单项。
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `gorm:"size:128;not null" json:"name"`
	Price int64  `gorm:"not null" json:"price"` // 单位：分

	RequirementSchema RequirementSchema `gorm:"type:json" json:"requirement_schema,omitempty"`
}

func (Product) TableName() string { return "products" }
