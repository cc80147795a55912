package fulfillment

import (
	"context"
	"time"

	"acrylic_shop/internal/model"
)

// InputView 槽位上单个输入项的当前状态（买家/后台共用）。
type InputView struct {
	Key      string          `json:"key"`
	Type     model.InputType `json:"type"`
	Label    string          `json:"label"`
	Required bool            `json:"required"`
	Filled   bool            `json:"filled"`

	Value string `json:"value,omitempty"`

	FileID     string             `json:"file_id,omitempty"`
	FileName   string             `json:"file_name,omitempty"`
	FileURL    string             `json:"file_url,omitempty"`
	FileStatus model.UploadStatus `json:"file_status,omitempty"`
	Notes      string             `json:"reviewer_notes,omitempty"`
}

// SlotView 一个采集槽位的完成度与锁定状态。
type SlotView struct {
	SlotID      string      `json:"slot_id"`
	ItemID      uint        `json:"item_id"`
	ProductName string      `json:"product_name"`
	UnitIndex   int         `json:"unit_index"`
	Complete    bool        `json:"complete"`
	Locked      bool        `json:"locked"`
	Inputs      []InputView `json:"inputs"`
}

// OrderView 订单采集全景：买家据此渲染表单，后台据此定位待办。
type OrderView struct {
	Order    *model.Order `json:"order"`
	Slots    []SlotView   `json:"slots"`
	Complete bool         `json:"complete"`
}

// OrderView 组装订单采集视图。完成度全部现算，不读任何缓存。
func (s *Service) OrderView(ctx context.Context, orderNo string) (*OrderView, error) {
	order, err := s.OrderByNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	items, values, uploads, err := loadCollection(s.db.WithContext(ctx), order.ID)
	if err != nil {
		return nil, err
	}
	vIdx := indexValues(values)
	uIdx := indexUploads(uploads)

	editable := order.Status == model.OrderAwaitingData

	view := &OrderView{Order: order, Complete: true}
	for _, slot := range DeriveSlots(items) {
		sv := SlotView{
			SlotID:    slot.ID(),
			ItemID:    slot.ItemID,
			UnitIndex: slot.UnitIndex,
			Complete:  SlotComplete(slot, vIdx, uIdx),
		}
		for _, it := range items {
			if it.ID == slot.ItemID {
				sv.ProductName = it.ProductName
				break
			}
		}
		sv.Locked = !editable ||
			(len(order.ReopenedSlots) > 0 && !order.ReopenedSlots.Contains(sv.SlotID))

		for _, in := range slot.Schema {
			iv := InputView{
				Key:      in.Key,
				Type:     in.Type,
				Label:    in.Label,
				Required: in.Required,
			}
			if row := vIdx[valueKey{slot.ItemID, slot.UnitIndex, in.Key}]; row != nil {
				if in.Type == model.InputFile {
					if row.UploadID != nil {
						if up, ok := uIdx[*row.UploadID]; ok {
							iv.Filled = up.Status != model.UploadRejected
							iv.FileID = up.FileID
							iv.FileName = up.FileName
							iv.FileURL = up.FileURL
							iv.FileStatus = up.Status
							iv.Notes = up.ReviewerNotes
						}
					}
				} else {
					iv.Value = row.Value
					iv.Filled = row.Value != ""
				}
			}
			sv.Inputs = append(sv.Inputs, iv)
		}

		if !sv.Complete {
			view.Complete = false
		}
		view.Slots = append(view.Slots, sv)
	}
	return view, nil
}

// ReviewQueueItem 后台审核工作台条目：一个在审订单与其待定素材。
type ReviewQueueItem struct {
	OrderNo     string         `json:"order_no"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	Uploads     []model.Upload `json:"uploads"`
}

// ReviewQueue 列出所有 data_reviewing 订单与其待审素材（索引查询，不扫全量素材）。
func (s *Service) ReviewQueue(ctx context.Context) ([]ReviewQueueItem, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Where("status = ?", model.OrderDataReviewing).
		Order("submitted_at").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	var uploads []model.Upload
	err = s.db.WithContext(ctx).
		Where("order_id IN ? AND status IN ?", ids,
			[]model.UploadStatus{model.UploadSubmitted, model.UploadReviewing}).
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uint][]model.Upload, len(orders))
	for _, up := range uploads {
		if up.OrderID != nil {
			byOrder[*up.OrderID] = append(byOrder[*up.OrderID], up)
		}
	}

	out := make([]ReviewQueueItem, 0, len(orders))
	for _, o := range orders {
		out = append(out, ReviewQueueItem{
			OrderNo:     o.OrderNo,
			SubmittedAt: o.SubmittedAt,
			Uploads:     byOrder[o.ID],
		})
	}
	return out, nil
}
