package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"acrylic_shop/internal/model"
	"acrylic_shop/internal/queue"
	rediskey "acrylic_shop/pkg/redis"

	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderLocker 提供订单级互斥边界。
// 提交数据与复核竞态（买家还在改值 / 两个管理员同时定论）都靠它串行化。
type OrderLocker interface {
	Acquire(ctx context.Context, orderNo, token string) (bool, error)
	Release(ctx context.Context, orderNo, token string) error
}

// Notifier 发布订单事件。fire-and-forget，投递失败不回滚订单状态。
type Notifier interface {
	Publish(ctx context.Context, evt queue.OrderEvent) error
}

// Service 承载订单履约核心：状态机流转、数据采集、素材审核与返修周期。
type Service struct {
	db       *gorm.DB
	locker   OrderLocker
	notifier Notifier
	rdb      *rd.Client // 可选：事件幂等投递与状态缓存失效
}

func NewService(db *gorm.DB, locker OrderLocker, notifier Notifier, rdb *rd.Client) *Service {
	return &Service{db: db, locker: locker, notifier: notifier, rdb: rdb}
}

// OrderLine 下单行：商品与购买数量。
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// NewOrderNo 生成对外订单号。
func NewOrderNo() string {
	return "AC" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// CreateOrder 下单：快照商品名、单价与采集 schema 到订单项，订单落 pending。
func (s *Service) CreateOrder(ctx context.Context, userID int64, lines []OrderLine) (*model.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("order must contain at least one line")
	}

	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []model.OrderItem
		var amount int64
		for _, ln := range lines {
			if ln.Quantity < 1 {
				return fmt.Errorf("quantity must be >= 1")
			}
			var p model.Product
			if err := tx.First(&p, ln.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", ln.ProductID, err)
			}
			items = append(items, model.OrderItem{
				ProductID:         p.ID,
				ProductName:       p.Name,
				UnitPrice:         p.Price,
				Quantity:          ln.Quantity,
				RequirementSchema: p.RequirementSchema,
			})
			amount += p.Price * int64(ln.Quantity)
		}

		order = &model.Order{
			OrderNo: NewOrderNo(),
			UserID:  userID,
			Status:  model.OrderPending,
			Amount:  amount,
			Items:   items,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// OrderByNo 按订单号加载订单（含订单项）。
func (s *Service) OrderByNo(ctx context.Context, orderNo string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UploadByFileID 按对外文件 ID 加载素材。
func (s *Service) UploadByFileID(ctx context.Context, fileID string) (*model.Upload, error) {
	var up model.Upload
	err := s.db.WithContext(ctx).Where("file_id = ?", fileID).First(&up).Error
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// Checkout 提交结算：pending -> awaiting_payment。
func (s *Service) Checkout(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.simpleTransition(ctx, orderNo, model.OrderAwaitingPayment)
}

// OnPaymentConfirmed 支付回调钩子（支付系统在外部）。
// awaiting_payment -> paid 后自动流转：有采集需求进 awaiting_data，否则直接 confirmed。
func (s *Service) OnPaymentConfirmed(ctx context.Context, orderNo string) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = lockOrder(tx, orderNo)
		if err != nil {
			return err
		}
		if err := applyTransition(order, model.OrderPaid); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Order("id").Find(&order.Items).Error; err != nil {
			return err
		}

		next := model.OrderConfirmed
		if order.NeedsCollection() {
			next = model.OrderAwaitingData
		}
		if err := applyTransition(order, next); err != nil {
			return err
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	s.dropStateCache(ctx, orderNo)
	if order.Status == model.OrderConfirmed {
		// 无需采集的订单付款即确认，同样要通知买家。
		s.notify(ctx, order, queue.EventOrderConfirmed, nil)
	}
	return order, nil
}

// Cancel 取消订单，仅限 processing 之前的状态。
func (s *Service) Cancel(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.simpleTransition(ctx, orderNo, model.OrderCancelled)
}

// MarkProcessing / MarkShipped / MarkDelivered 由履约运营动作驱动。
func (s *Service) MarkProcessing(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.simpleTransition(ctx, orderNo, model.OrderProcessing)
}

func (s *Service) MarkShipped(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.simpleTransition(ctx, orderNo, model.OrderShipped)
}

func (s *Service) MarkDelivered(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.simpleTransition(ctx, orderNo, model.OrderDelivered)
}

// AcknowledgeRevision 买家确认返修：revision_required -> awaiting_data。
// ReopenedSlots 保留，只有被打回的槽位解锁，已通过的槽位维持只读。
func (s *Service) AcknowledgeRevision(ctx context.Context, orderNo string) (*model.Order, error) {
	return s.simpleTransition(ctx, orderNo, model.OrderAwaitingData)
}

// SetValue 写标量输入项。空字符串视为清除（未填）。
func (s *Service) SetValue(ctx context.Context, orderNo, slotID, inputKey, value string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, item, unitIndex, err := s.resolveSlot(tx, orderNo, slotID)
		if err != nil {
			return err
		}
		spec, ok := item.RequirementSchema.Find(inputKey)
		if !ok {
			return ErrUnknownInput
		}
		if !spec.Type.Scalar() {
			return &InvalidInputTypeError{Key: inputKey, Type: spec.Type}
		}

		v := strings.TrimSpace(value)
		if spec.MaxLength > 0 && len([]rune(v)) > spec.MaxLength {
			return fmt.Errorf("value exceeds max length %d", spec.MaxLength)
		}

		if v == "" {
			// 清空即删行，完成度检查自然回到“未填”。
			return tx.Where("order_item_id = ? AND unit_index = ? AND input_key = ?",
				item.ID, unitIndex, inputKey).Delete(&model.InputValue{}).Error
		}

		var row model.InputValue
		err = tx.Where("order_item_id = ? AND unit_index = ? AND input_key = ?",
			item.ID, unitIndex, inputKey).First(&row).Error
		switch {
		case err == nil:
			row.Value = v
			return tx.Save(&row).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&model.InputValue{
				OrderID:     order.ID,
				OrderItemID: item.ID,
				UnitIndex:   unitIndex,
				InputKey:    inputKey,
				InputType:   spec.Type,
				Value:       v,
			}).Error
		default:
			return err
		}
	})
}

// BindFile 把已上传素材绑定到槽位的文件输入项。
// 上传字节早已完成（慢路径在 storage），这里只是快速的元数据写。
func (s *Service) BindFile(ctx context.Context, orderNo, slotID, inputKey, fileID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, item, unitIndex, err := s.resolveSlot(tx, orderNo, slotID)
		if err != nil {
			return err
		}
		spec, ok := item.RequirementSchema.Find(inputKey)
		if !ok {
			return ErrUnknownInput
		}
		if spec.Type != model.InputFile {
			return &InvalidInputTypeError{Key: inputKey, Type: spec.Type}
		}

		var up model.Upload
		if err := tx.Where("file_id = ?", fileID).First(&up).Error; err != nil {
			return err
		}
		if up.Status == model.UploadRejected {
			return ErrUploadRejected
		}
		if !matchAccept(spec.Accept, up.FileName, up.MimeType) {
			return fmt.Errorf("file %q does not match accept list %v", up.FileName, spec.Accept)
		}
		if spec.MaxSizeMB > 0 && up.FileSize > int64(spec.MaxSizeMB)*1024*1024 {
			return fmt.Errorf("file exceeds max size %dMB", spec.MaxSizeMB)
		}

		var row model.InputValue
		err = tx.Where("order_item_id = ? AND unit_index = ? AND input_key = ?",
			item.ID, unitIndex, inputKey).First(&row).Error
		switch {
		case err == nil:
			// 换绑时旧素材退回未绑定状态，避免悬挂的槽位引用。
			if row.UploadID != nil && *row.UploadID != up.ID {
				if err := unlinkUpload(tx, *row.UploadID); err != nil {
					return err
				}
			}
			row.UploadID = &up.ID
			row.FileName = up.FileName
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.InputValue{
				OrderID:     order.ID,
				OrderItemID: item.ID,
				UnitIndex:   unitIndex,
				InputKey:    inputKey,
				InputType:   model.InputFile,
				UploadID:    &up.ID,
				FileName:    up.FileName,
			}).Error; err != nil {
				return err
			}
		default:
			return err
		}

		up.OrderID = &order.ID
		up.OrderItemID = &item.ID
		up.UnitIndex = &unitIndex
		up.InputKey = inputKey
		return tx.Save(&up).Error
	})
}

// UnbindFile 解除槽位上的文件绑定。
func (s *Service) UnbindFile(ctx context.Context, orderNo, slotID, inputKey string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, item, unitIndex, err := s.resolveSlot(tx, orderNo, slotID)
		if err != nil {
			return err
		}

		var row model.InputValue
		err = tx.Where("order_item_id = ? AND unit_index = ? AND input_key = ?",
			item.ID, unitIndex, inputKey).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if row.UploadID != nil {
			if err := unlinkUpload(tx, *row.UploadID); err != nil {
				return err
			}
		}
		return tx.Delete(&row).Error
	})
}

// RegisterUpload 落一条裸上传记录。只有 blob 写成功后才会走到这里，
// 上传失败不产生任何 Upload 行。
func (s *Service) RegisterUpload(ctx context.Context, userID int64, fileName, objectKey, fileURL string, fileSize int64, mimeType string) (*model.Upload, error) {
	up := &model.Upload{
		FileID:    uuid.New().String(),
		FileName:  fileName,
		ObjectKey: objectKey,
		FileURL:   fileURL,
		FileSize:  fileSize,
		MimeType:  mimeType,
		UserID:    userID,
		Status:    model.UploadSubmitted,
	}
	if err := s.db.WithContext(ctx).Create(up).Error; err != nil {
		return nil, err
	}
	return up, nil
}

// DeleteUpload 删除尚未进审的素材，并同步解除所有槽位绑定。
func (s *Service) DeleteUpload(ctx context.Context, fileID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var up model.Upload
		if err := tx.Where("file_id = ?", fileID).First(&up).Error; err != nil {
			return err
		}
		if up.Status != model.UploadSubmitted {
			return &UploadStateError{FileID: fileID, Status: up.Status}
		}
		// 同步解绑：引用行直接删除，完成度立即回到“未填”。
		if err := tx.Where("upload_id = ?", up.ID).Delete(&model.InputValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&up).Error
	})
}

// SubmitCollectedData 买家提交采集数据：
// 1. 订单锁内重查完成度（绝不信锁外的读）
// 2. 不完整 -> SubmissionIncompleteError，状态原样
// 3. 完整 -> 绑定中的素材 submitted -> reviewing，订单 awaiting_data -> data_reviewing
// 全部动作在一个事务里，要么都发生要么都不发生。
func (s *Service) SubmitCollectedData(ctx context.Context, orderNo string) error {
	return s.withOrderLock(ctx, orderNo, func() error {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			order, err := lockOrder(tx, orderNo)
			if err != nil {
				return err
			}
			if order.Status != model.OrderAwaitingData {
				return &model.IllegalTransitionError{From: order.Status, To: model.OrderDataReviewing}
			}

			items, values, uploads, err := loadCollection(tx, order.ID)
			if err != nil {
				return err
			}
			if inc := IncompleteSlots(items, values, uploads); len(inc) > 0 {
				return &SubmissionIncompleteError{Incomplete: inc}
			}

			var boundIDs []uint
			for _, v := range values {
				if v.UploadID != nil {
					boundIDs = append(boundIDs, *v.UploadID)
				}
			}
			if len(boundIDs) > 0 {
				if err := tx.Model(&model.Upload{}).
					Where("id IN ? AND status = ?", boundIDs, model.UploadSubmitted).
					Update("status", model.UploadReviewing).Error; err != nil {
					return err
				}
			}

			if err := applyTransition(order, model.OrderDataReviewing); err != nil {
				return err
			}
			order.ReopenedSlots = nil
			return tx.Save(order).Error
		})
		if err == nil {
			s.dropStateCache(ctx, orderNo)
		}
		return err
	})
}

// ClaimUpload 审核员认领素材：submitted -> reviewing（advisory，可跳过）。
func (s *Service) ClaimUpload(ctx context.Context, fileID string) (*model.Upload, error) {
	return s.reviewTransition(ctx, fileID, model.UploadReviewing, "")
}

// Approve 通过素材。不直接动订单，聚合结论由 ResolveReview 得出。
func (s *Service) Approve(ctx context.Context, fileID, notes string) (*model.Upload, error) {
	return s.reviewTransition(ctx, fileID, model.UploadApproved, notes)
}

// Reject 打回素材。说明为空直接拒绝操作，素材状态不变。
// 打回是该素材的终态，槽位必须绑定全新 Upload 才能再次完成。
func (s *Service) Reject(ctx context.Context, fileID, notes string) (*model.Upload, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrMissingReason
	}
	return s.reviewTransition(ctx, fileID, model.UploadRejected, notes)
}

func (s *Service) reviewTransition(ctx context.Context, fileID string, to model.UploadStatus, notes string) (*model.Upload, error) {
	var up model.Upload
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("file_id = ?", fileID).First(&up).Error; err != nil {
			return err
		}
		if to == model.UploadReviewing {
			if up.Status != model.UploadSubmitted {
				return &UploadStateError{FileID: fileID, Status: up.Status}
			}
		} else if !up.Status.Pending() {
			return &UploadStateError{FileID: fileID, Status: up.Status}
		}

		up.Status = to
		if to == model.UploadApproved || to == model.UploadRejected {
			now := time.Now()
			up.ReviewedAt = &now
			up.ReviewerNotes = strings.TrimSpace(notes)
		}
		return tx.Save(&up).Error
	})
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// ResolveReviewForUpload 根据素材回溯所属订单并复核聚合结论。未绑定素材无事可做。
func (s *Service) ResolveReviewForUpload(ctx context.Context, up *model.Upload) error {
	if up.OrderID == nil {
		return nil
	}
	var order model.Order
	if err := s.db.WithContext(ctx).Select("order_no").First(&order, *up.OrderID).Error; err != nil {
		return err
	}
	return s.ResolveReview(ctx, order.OrderNo)
}

// ResolveReview 在每次 approve/reject 之后调用，把素材聚合结论落到订单上：
//   - 任何绑定素材被打回 -> revision_required，ReopenedSlots 精确等于被打回槽位
//   - 全部绑定素材通过   -> confirmed
//   - 还有素材在审       -> 保持 data_reviewing
//
// 订单已处于 revision_required 时仍要聚合：迟到的打回把新槽位并入
// ReopenedSlots，买家看到的解锁范围始终等于全部被打回槽位。
// 前置条件在订单锁与事务内重查，两个管理员并发定论也只会有一个赢。
func (s *Service) ResolveReview(ctx context.Context, orderNo string) error {
	return s.withOrderLock(ctx, orderNo, func() error {
		var done *model.Order
		var event string
		var reopened []string

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			order, err := lockOrder(tx, orderNo)
			if err != nil {
				return err
			}
			if order.Status != model.OrderDataReviewing && order.Status != model.OrderRevisionRequired {
				// 审核尚未开始或已定论，没有聚合可做。
				return nil
			}

			_, values, uploads, err := loadCollection(tx, order.ID)
			if err != nil {
				return err
			}

			uIdx := indexUploads(uploads)
			seen := make(map[string]struct{})
			allApproved := true
			// 在既有解锁集合上累加（data_reviewing 阶段该集合恒为空）。
			for _, id := range order.ReopenedSlots {
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					reopened = append(reopened, id)
				}
			}
			for _, v := range values {
				if v.UploadID == nil {
					continue
				}
				up, ok := uIdx[*v.UploadID]
				if !ok {
					continue
				}
				switch up.Status {
				case model.UploadRejected:
					id := SlotID(v.OrderItemID, v.UnitIndex)
					if _, dup := seen[id]; !dup {
						seen[id] = struct{}{}
						reopened = append(reopened, id)
					}
					allApproved = false
				case model.UploadApproved:
					// ok
				default:
					allApproved = false
				}
			}

			if len(reopened) > 0 {
				if order.Status == model.OrderDataReviewing {
					if err := applyTransition(order, model.OrderRevisionRequired); err != nil {
						return err
					}
				} else if len(reopened) == len(order.ReopenedSlots) {
					// 解锁集合没有变化，不重复落库也不重复通知。
					return nil
				}
				order.ReopenedSlots = reopened
				if err := tx.Save(order).Error; err != nil {
					return err
				}
				done, event = order, queue.EventRevisionRequired
				return nil
			}
			if allApproved {
				if order.Status != model.OrderDataReviewing {
					return nil
				}
				if err := applyTransition(order, model.OrderConfirmed); err != nil {
					return err
				}
				order.ReopenedSlots = nil
				if err := tx.Save(order).Error; err != nil {
					return err
				}
				done, event = order, queue.EventOrderConfirmed
				return nil
			}
			// 仍有素材待审，订单停在 data_reviewing。
			return nil
		})
		if err != nil {
			return err
		}

		if done != nil {
			s.dropStateCache(ctx, orderNo)
			s.notify(ctx, done, event, reopened)
		}
		return nil
	})
}

// ---- 内部工具 ----

// withOrderLock 在订单互斥锁内执行 fn；locker 未配置时退化为直接执行。
func (s *Service) withOrderLock(ctx context.Context, orderNo string, fn func() error) error {
	if s.locker == nil {
		return fn()
	}
	token := uuid.New().String()
	ok, err := s.locker.Acquire(ctx, orderNo, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderBusy
	}
	defer func() { _ = s.locker.Release(ctx, orderNo, token) }()
	return fn()
}

// lockOrder 行锁加载订单，串行化同一订单上的并发写。
func lockOrder(tx *gorm.DB, orderNo string) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// loadCollection 加载订单的采集三件套：订单项、当前值、被绑定的素材。
// 素材按 id IN (...) 索引查询，不扫全表。
func loadCollection(tx *gorm.DB, orderID uint) ([]model.OrderItem, []model.InputValue, []model.Upload, error) {
	var items []model.OrderItem
	if err := tx.Where("order_id = ?", orderID).Order("id").Find(&items).Error; err != nil {
		return nil, nil, nil, err
	}
	var values []model.InputValue
	if err := tx.Where("order_id = ?", orderID).Find(&values).Error; err != nil {
		return nil, nil, nil, err
	}

	var ids []uint
	for _, v := range values {
		if v.UploadID != nil {
			ids = append(ids, *v.UploadID)
		}
	}
	var uploads []model.Upload
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&uploads).Error; err != nil {
			return nil, nil, nil, err
		}
	}
	return items, values, uploads, nil
}

// resolveSlot 解析槽位标识并校验采集是否可写（状态 + 返修锁定范围）。
func (s *Service) resolveSlot(tx *gorm.DB, orderNo, slotID string) (*model.Order, *model.OrderItem, int, error) {
	order, err := lockOrder(tx, orderNo)
	if err != nil {
		return nil, nil, 0, err
	}
	if order.Status != model.OrderAwaitingData {
		return nil, nil, 0, ErrCollectionClosed
	}
	if len(order.ReopenedSlots) > 0 && !order.ReopenedSlots.Contains(slotID) {
		return nil, nil, 0, ErrSlotLocked
	}

	itemID, unitIndex, err := ParseSlotID(slotID)
	if err != nil {
		return nil, nil, 0, err
	}
	var item model.OrderItem
	if err := tx.Where("id = ? AND order_id = ?", itemID, order.ID).First(&item).Error; err != nil {
		return nil, nil, 0, err
	}
	if unitIndex > item.Quantity {
		return nil, nil, 0, fmt.Errorf("unit index %d out of range (quantity %d)", unitIndex, item.Quantity)
	}
	if !item.NeedsCollection() {
		return nil, nil, 0, ErrUnknownInput
	}
	return order, &item, unitIndex, nil
}

// unlinkUpload 清掉素材上的槽位反向引用。
func unlinkUpload(tx *gorm.DB, uploadID uint) error {
	return tx.Model(&model.Upload{}).Where("id = ?", uploadID).
		Updates(map[string]any{
			"order_id":      nil,
			"order_item_id": nil,
			"unit_index":    nil,
			"input_key":     "",
		}).Error
}

// applyTransition 校验并应用状态流转，顺带打时间戳。非法流转不产生任何写。
func applyTransition(order *model.Order, to model.OrderStatus) error {
	if !order.Status.CanTransition(to) {
		return &model.IllegalTransitionError{From: order.Status, To: to}
	}
	order.Status = to
	now := time.Now()
	switch to {
	case model.OrderPaid:
		order.PaidAt = &now
	case model.OrderDataReviewing:
		order.SubmittedAt = &now
	case model.OrderConfirmed:
		order.ConfirmedAt = &now
	case model.OrderShipped:
		order.ShippedAt = &now
	case model.OrderDelivered:
		order.DeliveredAt = &now
	case model.OrderCancelled:
		order.CancelledAt = &now
	}
	return nil
}

func (s *Service) simpleTransition(ctx context.Context, orderNo string, to model.OrderStatus) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = lockOrder(tx, orderNo)
		if err != nil {
			return err
		}
		if err := applyTransition(order, to); err != nil {
			return err
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}
	s.dropStateCache(ctx, orderNo)
	return order, nil
}

// notify 投递订单事件。事件 ID 由订单号+事件+提交轮次构成，天然幂等。
func (s *Service) notify(ctx context.Context, order *model.Order, event string, slots []string) {
	if s.notifier == nil {
		return
	}
	ref := order.CreatedAt
	if order.SubmittedAt != nil {
		ref = *order.SubmittedAt
	} else if order.PaidAt != nil {
		ref = *order.PaidAt
	}
	eventID := fmt.Sprintf("%s:%s:%d", order.OrderNo, event, ref.Unix())

	if s.rdb != nil {
		ok, err := rediskey.NotifyOnce(ctx, s.rdb, eventID)
		if err != nil {
			// Redis 出错时照常投递，消费端靠 UNIQUE event_id 幂等兜底。
			log.Printf("notify dedup order=%s: %v", order.OrderNo, err)
		} else if !ok {
			return
		}
	}

	evt := queue.OrderEvent{
		EventID:    eventID,
		OrderNo:    order.OrderNo,
		Event:      event,
		Slots:      slots,
		OccurredAt: time.Now().Unix(),
	}
	if err := s.notifier.Publish(ctx, evt); err != nil {
		log.Printf("notify publish order=%s event=%s: %v", order.OrderNo, event, err)
	}
}

func (s *Service) dropStateCache(ctx context.Context, orderNo string) {
	if s.rdb == nil {
		return
	}
	if err := rediskey.DropOrderState(ctx, s.rdb, orderNo); err != nil {
		log.Printf("drop order state cache order=%s: %v", orderNo, err)
	}
}

// matchAccept 按扩展名或 MIME 匹配 accept 列表（大小写不敏感）。
// 支持 ".png"、"image/png"、"image/*" 三种写法。
func matchAccept(accept []string, fileName, mimeType string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	mt := strings.ToLower(mimeType)
	for _, a := range accept {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		switch {
		case strings.HasPrefix(a, "."):
			if ext == a {
				return true
			}
		case strings.HasSuffix(a, "/*"):
			if strings.HasPrefix(mt, strings.TrimSuffix(a, "*")) {
				return true
			}
		default:
			if mt == a {
				return true
			}
		}
	}
	return false
}
