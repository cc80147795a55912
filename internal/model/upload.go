package model

import (
	"time"

	"gorm.io/gorm"
)

// UploadStatus 描述上传素材的审核生命周期。
type UploadStatus string

const (
	UploadSubmitted UploadStatus = "submitted" // 已上传，未进审
	UploadReviewing UploadStatus = "reviewing" // 审核员已认领
	UploadApproved  UploadStatus = "approved"  // 通过
	UploadRejected  UploadStatus = "rejected"  // 打回（终态，槽位需绑定全新 Upload）
)

// Pending 对买家可见性而言 submitted/reviewing 都算“审核中”。
func (s UploadStatus) Pending() bool {
	return s == UploadSubmitted || s == UploadReviewing
}

// Upload 上传素材。先独立于订单创建（裸上传），再绑定到具体槽位的文件输入项。
type Upload struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FileID    string `gorm:"size:64;uniqueIndex;not null" json:"file_id"` // 对外暴露的 uuid
	FileName  string `gorm:"size:255;not null" json:"file_name"`
	ObjectKey string `gorm:"size:512;not null" json:"-"` // blob 存储内部对象名
	FileURL   string `gorm:"size:1024;not null" json:"file_url"`
	FileSize  int64  `gorm:"not null" json:"file_size"`
	MimeType  string `gorm:"size:128;not null" json:"mime_type"`

	UserID int64 `gorm:"not null;index" json:"user_id"`

	// 绑定到槽位后填充；裸上传阶段为空。
	OrderID     *uint  `gorm:"index" json:"order_id,omitempty"`
	OrderItemID *uint  `gorm:"index" json:"order_item_id,omitempty"`
	UnitIndex   *int   `json:"unit_index,omitempty"`
	InputKey    string `gorm:"size:64" json:"input_key,omitempty"`

	Status        UploadStatus `gorm:"size:16;not null;index" json:"status"`
	ReviewerNotes string       `gorm:"size:1024" json:"reviewer_notes,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
}

func (Upload) TableName() string { return "uploads" }
