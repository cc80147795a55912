package fulfillment

import (
	"strings"

	"acrylic_shop/internal/model"
)

// valueKey 是 (订单项, 件序号, 输入项) 的复合键。
type valueKey struct {
	ItemID    uint
	UnitIndex int
	InputKey  string
}

// valueIndex 把当前 InputValue 行索引成槽位维度的查找结构。
type valueIndex map[valueKey]*model.InputValue

func indexValues(values []model.InputValue) valueIndex {
	idx := make(valueIndex, len(values))
	for i := range values {
		v := &values[i]
		idx[valueKey{v.OrderItemID, v.UnitIndex, v.InputKey}] = v
	}
	return idx
}

func indexUploads(uploads []model.Upload) map[uint]model.Upload {
	idx := make(map[uint]model.Upload, len(uploads))
	for _, up := range uploads {
		idx[up.ID] = up
	}
	return idx
}

// SlotComplete 判断单个槽位是否完成：
//   - 必填标量项要求非空字符串；
//   - 必填文件项要求已绑定 Upload 且该 Upload 未被打回；
//   - 非必填项永不阻塞完成度。
//
// 对输入类型做穷举分派，新增第五种类型时这里必须显式处理。
func SlotComplete(slot Slot, values valueIndex, uploads map[uint]model.Upload) bool {
	for _, in := range slot.Schema {
		if !in.Required {
			continue
		}
		v := values[valueKey{slot.ItemID, slot.UnitIndex, in.Key}]
		switch in.Type {
		case model.InputText, model.InputURL, model.InputDate:
			if v == nil || strings.TrimSpace(v.Value) == "" {
				return false
			}
		case model.InputFile:
			if v == nil || v.UploadID == nil {
				return false
			}
			up, ok := uploads[*v.UploadID]
			if !ok || up.Status == model.UploadRejected {
				return false
			}
		default:
			// 未知类型一律视为未完成，宁可卡住提交也不放过脏 schema。
			return false
		}
	}
	return true
}

// IncompleteSlots 返回未完成槽位的 ID 列表（派生顺序稳定）。
func IncompleteSlots(items []model.OrderItem, values []model.InputValue, uploads []model.Upload) []string {
	vIdx := indexValues(values)
	uIdx := indexUploads(uploads)

	var out []string
	for _, slot := range DeriveSlots(items) {
		if !SlotComplete(slot, vIdx, uIdx) {
			out = append(out, slot.ID())
		}
	}
	return out
}

// ItemComplete 订单项的全部槽位完成（无 schema 视为天然完成）。
func ItemComplete(item model.OrderItem, values []model.InputValue, uploads []model.Upload) bool {
	return len(IncompleteSlots([]model.OrderItem{item}, values, uploads)) == 0
}

// OrderUploadComplete 订单全部订单项完成，提交数据的前置条件。
func OrderUploadComplete(items []model.OrderItem, values []model.InputValue, uploads []model.Upload) bool {
	return len(IncompleteSlots(items, values, uploads)) == 0
}
