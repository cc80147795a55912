package model

import (
	"time"

	"gorm.io/gorm"
)

// NotificationStatus 描述通知投递状态机。
type NotificationStatus int

const (
	NotificationPending NotificationStatus = iota // 已入库、待投递
	NotificationSent                              // 投递成功
	NotificationFailed                            // 投递失败，已标记
)

// Notification tracks delivered order events for back-office queryability.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EventID string `gorm:"size:64;uniqueIndex;not null" json:"event_id"` // 事件幂等键
	OrderNo string `gorm:"size:64;index;not null" json:"order_no"`
	Event   string `gorm:"size:32;not null" json:"event"`
	Payload string `gorm:"size:2048" json:"payload"`

	// Status + ErrorMsg 支撑后台可观测与失败排查。
	Status   NotificationStatus `gorm:"not null;default:0;index" json:"status"`
	ErrorMsg string             `gorm:"size:255" json:"error_msg"`
}

func (Notification) TableName() string { return "notifications" }
