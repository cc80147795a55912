package model

import (
	"time"

	"gorm.io/gorm"
)

// InputValue 保存某个槽位上某个输入项的当前值。
// 标量类型存 Value；文件类型存 Upload 绑定（UploadID/FileName）。
// 完成度永远从当前行现算，不做缓存，文件被删后不会出现“假完成”。
type InputValue struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	OrderItemID uint      `gorm:"not null;uniqueIndex:uq_slot_input" json:"order_item_id"`
	UnitIndex   int       `gorm:"not null;uniqueIndex:uq_slot_input" json:"unit_index"` // 1-based
	InputKey    string    `gorm:"size:64;not null;uniqueIndex:uq_slot_input" json:"input_key"`
	InputType   InputType `gorm:"size:16;not null" json:"input_type"`

	Value    string `gorm:"size:2048" json:"value,omitempty"`
	UploadID *uint  `gorm:"index" json:"upload_id,omitempty"`
	FileName string `gorm:"size:255" json:"file_name,omitempty"`
}

func (InputValue) TableName() string { return "input_values" }
