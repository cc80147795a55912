package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus 订单状态机。全仓只认这一套枚举，展示层映射文案即可。
type OrderStatus string

const (
	OrderPending          OrderStatus = "pending"           // 已落单，未提交结算
	OrderAwaitingPayment  OrderStatus = "awaiting_payment"  // 已结算，等支付回调
	OrderPaid             OrderStatus = "paid"              // 支付完成（过渡态，自动流转）
	OrderAwaitingData     OrderStatus = "awaiting_data"     // 等买家提交定制数据
	OrderDataReviewing    OrderStatus = "data_reviewing"    // 数据已提交，审核中
	OrderRevisionRequired OrderStatus = "revision_required" // 有素材被打回，等买家返修
	OrderConfirmed        OrderStatus = "confirmed"         // 数据通过（或无需采集），待排产
	OrderProcessing       OrderStatus = "processing"        // 制作中
	OrderShipped          OrderStatus = "shipped"           // 已发货
	OrderDelivered        OrderStatus = "delivered"         // 已签收
	OrderCancelled        OrderStatus = "cancelled"         // 已取消（终态）
)

// orderTransitions 列出每个状态允许进入的下一批状态。
// 所有写操作先查这张表再落库，非法流转不会产生任何写入。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:          {OrderAwaitingPayment, OrderCancelled},
	OrderAwaitingPayment:  {OrderPaid, OrderCancelled},
	OrderPaid:             {OrderAwaitingData, OrderConfirmed, OrderCancelled},
	OrderAwaitingData:     {OrderDataReviewing, OrderCancelled},
	OrderDataReviewing:    {OrderConfirmed, OrderRevisionRequired},
	OrderRevisionRequired: {OrderAwaitingData},
	OrderConfirmed:        {OrderProcessing},
	OrderProcessing:       {OrderShipped},
	OrderShipped:          {OrderDelivered},
}

// CanTransition 判断 s -> to 是否是合法流转。
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IllegalTransitionError 表示客户端持有的状态已过期（防御性错误，提示刷新）。
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal order transition %s -> %s", e.From, e.To)
}

// Order 定制订单
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderNo string      `gorm:"size:64;uniqueIndex;not null" json:"order_no"`
	UserID  int64       `gorm:"not null;index" json:"user_id"`
	Status  OrderStatus `gorm:"size:32;not null;index" json:"status"`
	Amount  int64       `gorm:"not null" json:"amount"` // 总金额，单位分

	// ReopenedSlots 保存返修周期中解锁的槽位集合。
	// 为空表示整单可编辑；非空时只有集合内的槽位接受修改，已通过的槽位保持锁定。
	ReopenedSlots StringSlice `gorm:"type:json" json:"reopened_slots,omitempty"`

	PaidAt      *time.Time `json:"paid_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// NeedsCollection 只要有一个订单项带非空 schema，订单就要走数据采集阶段。
func (o *Order) NeedsCollection() bool {
	for _, it := range o.Items {
		if it.NeedsCollection() {
			return true
		}
	}
	return false
}
