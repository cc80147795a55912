package fulfillment

import (
	"fmt"
	"strconv"
	"strings"

	"acrylic_shop/internal/model"
)

// Slot 表示一个可寻址的数据采集单元：订单项 × 第 N 件。
// 槽位不落库，身份是 (订单项ID, 件序号) 的纯函数，前后端据此寻址。
type Slot struct {
	ItemID    uint
	UnitIndex int // 1-based
	Schema    model.RequirementSchema
}

// ID 返回槽位稳定标识，同一订单项同一件序号永远得到同一个 ID。
func (s Slot) ID() string { return SlotID(s.ItemID, s.UnitIndex) }

// SlotID 统一约定槽位标识格式。
func SlotID(itemID uint, unitIndex int) string {
	return fmt.Sprintf("%d:%d", itemID, unitIndex)
}

// ParseSlotID 解析槽位标识。
func ParseSlotID(id string) (itemID uint, unitIndex int, err error) {
	part, idxStr, ok := strings.Cut(id, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid slot id %q", id)
	}
	item64, err := strconv.ParseUint(part, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot id %q", id)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 1 {
		return 0, 0, fmt.Errorf("invalid slot id %q", id)
	}
	return uint(item64), idx, nil
}

// DeriveSlots 把订单项按购买数量展开为槽位投影，件序号从 1 递增。
// 纯函数、无副作用：同一批订单项两次展开得到完全相同的槽位序列。
// schema 为空的订单项不产生槽位。
func DeriveSlots(items []model.OrderItem) []Slot {
	var out []Slot
	for _, it := range items {
		if !it.NeedsCollection() {
			continue
		}
		for i := 1; i <= it.Quantity; i++ {
			out = append(out, Slot{ItemID: it.ID, UnitIndex: i, Schema: it.RequirementSchema})
		}
	}
	return out
}
