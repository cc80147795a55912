package queue

import "fmt"

// 订单事件类型：审核全部通过 / 有素材被打回。
const (
	EventOrderConfirmed   = "order_confirmed"
	EventRevisionRequired = "revision_required"
)

// OrderEvent 是写入通知管道的订单事件。
// 通知是 fire-and-forget：投递失败不回滚订单状态。
type OrderEvent struct {
	EventID    string   `json:"event_id"` // 幂等键
	OrderNo    string   `json:"order_no"`
	Event      string   `json:"event"`
	Slots      []string `json:"slots,omitempty"` // revision_required 时为被打回槽位
	OccurredAt int64    `json:"occurred_at"`     // unix 秒
}

// Validate 做最小字段校验，防止消费者处理脏消息。
func (e OrderEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id is required")
	}
	if e.OrderNo == "" {
		return fmt.Errorf("order_no is required")
	}
	if e.Event != EventOrderConfirmed && e.Event != EventRevisionRequired {
		return fmt.Errorf("unknown event %q", e.Event)
	}
	if e.Event == EventRevisionRequired && len(e.Slots) == 0 {
		return fmt.Errorf("revision_required must carry rejected slots")
	}
	return nil
}
