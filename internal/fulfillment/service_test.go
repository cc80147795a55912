package fulfillment

import (
	"context"
	"sync"
	"testing"

	"acrylic_shop/internal/model"
	"acrylic_shop/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memLocker 进程内订单锁，替代 Redis 实现做并发边界测试。
type memLocker struct {
	mu   sync.Mutex
	held map[string]string
}

func newMemLocker() *memLocker { return &memLocker{held: make(map[string]string)} }

func (l *memLocker) Acquire(_ context.Context, orderNo, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[orderNo]; ok {
		return false, nil
	}
	l.held[orderNo] = token
	return true, nil
}

func (l *memLocker) Release(_ context.Context, orderNo, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[orderNo] == token {
		delete(l.held, orderNo)
	}
	return nil
}

// memNotifier 记录发布过的事件。
type memNotifier struct {
	mu     sync.Mutex
	events []queue.OrderEvent
}

func (n *memNotifier) Publish(_ context.Context, evt queue.OrderEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
	return nil
}

func (n *memNotifier) last() (queue.OrderEvent, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return queue.OrderEvent{}, false
	}
	return n.events[len(n.events)-1], true
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库：多连接会各开一份库，收紧到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.InputValue{},
		&model.Upload{},
		&model.Notification{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *memNotifier) {
	t.Helper()
	notifier := &memNotifier{}
	return NewService(newTestDB(t), newMemLocker(), notifier, nil), notifier
}

var testSchema = model.RequirementSchema{
	{Key: "engraving", Type: model.InputText, Label: "刻字内容", Required: true, MaxLength: 30},
	{Key: "photo", Type: model.InputFile, Label: "定制图片", Required: true,
		Accept: []string{".png", "image/*"}, MaxSizeMB: 5},
}

// seedOrder 建商品、下单并推进到 awaiting_data，返回订单号与订单项 ID。
func seedOrder(t *testing.T, svc *Service, qty int) (string, uint) {
	t.Helper()
	ctx := context.Background()

	p := &model.Product{Name: "定制立牌", Price: 5900, RequirementSchema: testSchema}
	require.NoError(t, svc.db.Create(p).Error)

	order, err := svc.CreateOrder(ctx, 10001, []OrderLine{{ProductID: p.ID, Quantity: qty}})
	require.NoError(t, err)
	require.Equal(t, model.OrderPending, order.Status)
	require.Equal(t, int64(5900*qty), order.Amount)

	_, err = svc.Checkout(ctx, order.OrderNo)
	require.NoError(t, err)
	order, err = svc.OnPaymentConfirmed(ctx, order.OrderNo)
	require.NoError(t, err)
	require.Equal(t, model.OrderAwaitingData, order.Status)
	require.NotNil(t, order.PaidAt)

	return order.OrderNo, order.Items[0].ID
}

// seedUpload 落一条裸上传素材。
func seedUpload(t *testing.T, svc *Service, fileName, mimeType string, size int64) *model.Upload {
	t.Helper()
	up, err := svc.RegisterUpload(context.Background(), 10001, fileName,
		"uploads/test/"+fileName, "http://blob/"+fileName, size, mimeType)
	require.NoError(t, err)
	require.Equal(t, model.UploadSubmitted, up.Status)
	return up
}

// fillSlot 填满一个槽位的全部必填项，返回绑定的素材。
func fillSlot(t *testing.T, svc *Service, orderNo string, itemID uint, unitIndex int) *model.Upload {
	t.Helper()
	ctx := context.Background()
	slot := SlotID(itemID, unitIndex)
	require.NoError(t, svc.SetValue(ctx, orderNo, slot, "engraving", "刻字"))
	up := seedUpload(t, svc, "photo.png", "image/png", 1024)
	require.NoError(t, svc.BindFile(ctx, orderNo, slot, "photo", up.FileID))
	return up
}

func TestPaymentSkipsCollectionWithoutSchema(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	p := &model.Product{Name: "现货钥匙扣", Price: 1500}
	require.NoError(t, svc.db.Create(p).Error)

	order, err := svc.CreateOrder(ctx, 10001, []OrderLine{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, order.OrderNo)
	require.NoError(t, err)

	order, err = svc.OnPaymentConfirmed(ctx, order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, order.Status)
	assert.NotNil(t, order.ConfirmedAt)

	evt, ok := notifier.last()
	require.True(t, ok)
	assert.Equal(t, queue.EventOrderConfirmed, evt.Event)
	assert.Equal(t, order.OrderNo, evt.OrderNo)
}

func TestSetValueRules(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	slot := SlotID(itemID, 1)

	// 未知输入项
	assert.ErrorIs(t, svc.SetValue(ctx, orderNo, slot, "nope", "x"), ErrUnknownInput)

	// 文件项不接受标量写
	var badType *InvalidInputTypeError
	assert.ErrorAs(t, svc.SetValue(ctx, orderNo, slot, "photo", "x"), &badType)

	// 超长拒绝
	long := make([]rune, 31)
	for i := range long {
		long[i] = '字'
	}
	assert.Error(t, svc.SetValue(ctx, orderNo, slot, "engraving", string(long)))

	// 正常写入后可读回
	require.NoError(t, svc.SetValue(ctx, orderNo, slot, "engraving", "  生日快乐  "))
	var row model.InputValue
	require.NoError(t, svc.db.Where("order_item_id = ? AND input_key = ?", itemID, "engraving").First(&row).Error)
	assert.Equal(t, "生日快乐", row.Value)

	// 空串清除，完成度回到未填
	require.NoError(t, svc.SetValue(ctx, orderNo, slot, "engraving", ""))
	err := svc.db.Where("order_item_id = ? AND input_key = ?", itemID, "engraving").First(&row).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 越界件序号
	assert.Error(t, svc.SetValue(ctx, orderNo, SlotID(itemID, 2), "engraving", "x"))
}

func TestSetValueClosedBeforePayment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := &model.Product{Name: "定制立牌", Price: 5900, RequirementSchema: testSchema}
	require.NoError(t, svc.db.Create(p).Error)
	order, err := svc.CreateOrder(ctx, 10001, []OrderLine{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)

	// pending 阶段采集未开放
	err = svc.SetValue(ctx, order.OrderNo, SlotID(order.Items[0].ID, 1), "engraving", "x")
	assert.ErrorIs(t, err, ErrCollectionClosed)
}

func TestBindFileRules(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	slot := SlotID(itemID, 1)

	// accept 不匹配
	bad := seedUpload(t, svc, "notes.txt", "text/plain", 100)
	assert.Error(t, svc.BindFile(ctx, orderNo, slot, "photo", bad.FileID))

	// 超过 MaxSizeMB
	huge := seedUpload(t, svc, "huge.png", "image/png", 6*1024*1024)
	assert.Error(t, svc.BindFile(ctx, orderNo, slot, "photo", huge.FileID))

	// 正常绑定，素材带上槽位反向引用
	ok := seedUpload(t, svc, "photo.png", "image/png", 1024)
	require.NoError(t, svc.BindFile(ctx, orderNo, slot, "photo", ok.FileID))
	bound, err := svc.UploadByFileID(ctx, ok.FileID)
	require.NoError(t, err)
	require.NotNil(t, bound.OrderItemID)
	assert.Equal(t, itemID, *bound.OrderItemID)
	assert.Equal(t, "photo", bound.InputKey)

	// 换绑：旧素材退回未绑定
	repl := seedUpload(t, svc, "photo2.jpg", "image/jpeg", 2048)
	require.NoError(t, svc.BindFile(ctx, orderNo, slot, "photo", repl.FileID))
	old, err := svc.UploadByFileID(ctx, ok.FileID)
	require.NoError(t, err)
	assert.Nil(t, old.OrderItemID)
	assert.Empty(t, old.InputKey)
}

func TestSubmitIncompleteKeepsStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 2)

	// 只填第 1 件
	fillSlot(t, svc, orderNo, itemID, 1)

	err := svc.SubmitCollectedData(ctx, orderNo)
	var inc *SubmissionIncompleteError
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, []string{SlotID(itemID, 2)}, inc.Incomplete)

	order, err := svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderAwaitingData, order.Status)
	assert.Nil(t, order.SubmittedAt)
}

func TestSubmitMovesUploadsToReviewing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	up := fillSlot(t, svc, orderNo, itemID, 1)

	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	order, err := svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderDataReviewing, order.Status)
	assert.NotNil(t, order.SubmittedAt)

	got, err := svc.UploadByFileID(ctx, up.FileID)
	require.NoError(t, err)
	assert.Equal(t, model.UploadReviewing, got.Status)

	// 审核中采集关闭
	err = svc.SetValue(ctx, orderNo, SlotID(itemID, 1), "engraving", "改主意了")
	assert.ErrorIs(t, err, ErrCollectionClosed)
}

func TestRejectRequiresNotes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	up := fillSlot(t, svc, orderNo, itemID, 1)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	_, err := svc.Reject(ctx, up.FileID, "   ")
	assert.ErrorIs(t, err, ErrMissingReason)

	// 素材与订单都原地不动
	got, err := svc.UploadByFileID(ctx, up.FileID)
	require.NoError(t, err)
	assert.Equal(t, model.UploadReviewing, got.Status)
}

func TestRevisionCycle(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 2)

	up1 := fillSlot(t, svc, orderNo, itemID, 1)
	up2 := fillSlot(t, svc, orderNo, itemID, 2)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	// 通过第 1 件，打回第 2 件
	_, err := svc.Approve(ctx, up1.FileID, "")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	// 只定论一件时订单仍在审
	order, err := svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderDataReviewing, order.Status)

	_, err = svc.Reject(ctx, up2.FileID, "图片分辨率过低")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	order, err = svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderRevisionRequired, order.Status)
	assert.Equal(t, []string{SlotID(itemID, 2)}, []string(order.ReopenedSlots))

	evt, ok := notifier.last()
	require.True(t, ok)
	assert.Equal(t, queue.EventRevisionRequired, evt.Event)
	assert.Equal(t, []string{SlotID(itemID, 2)}, evt.Slots)

	// 买家确认返修：只有被打回的槽位解锁
	_, err = svc.AcknowledgeRevision(ctx, orderNo)
	require.NoError(t, err)
	err = svc.SetValue(ctx, orderNo, SlotID(itemID, 1), "engraving", "偷偷改已通过的")
	assert.ErrorIs(t, err, ErrSlotLocked)

	// 被打回素材是终态，槽位必须换全新文件
	err = svc.BindFile(ctx, orderNo, SlotID(itemID, 2), "photo", up2.FileID)
	assert.ErrorIs(t, err, ErrUploadRejected)

	fresh := seedUpload(t, svc, "photo_fixed.png", "image/png", 2048)
	require.NoError(t, svc.BindFile(ctx, orderNo, SlotID(itemID, 2), "photo", fresh.FileID))
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	// 重新提交后锁定范围清空
	order, err = svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Empty(t, order.ReopenedSlots)

	// 新素材通过 -> confirmed（up1 此前已通过）
	_, err = svc.Approve(ctx, fresh.FileID, "")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	order, err = svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, order.Status)
	assert.NotNil(t, order.ConfirmedAt)

	evt, ok = notifier.last()
	require.True(t, ok)
	assert.Equal(t, queue.EventOrderConfirmed, evt.Event)
}

func TestLateRejectJoinsReopenedSlots(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 2)

	up1 := fillSlot(t, svc, orderNo, itemID, 1)
	up2 := fillSlot(t, svc, orderNo, itemID, 2)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	// 第一个打回先定论，订单进入返修态
	_, err := svc.Reject(ctx, up1.FileID, "主体被裁切")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	order, err := svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	require.Equal(t, model.OrderRevisionRequired, order.Status)
	require.Equal(t, []string{SlotID(itemID, 1)}, []string(order.ReopenedSlots))

	// 第二个打回迟到：解锁集合必须扩到两个槽位，不能丢
	_, err = svc.Reject(ctx, up2.FileID, "底色与要求不符")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	order, err = svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderRevisionRequired, order.Status)
	assert.ElementsMatch(t,
		[]string{SlotID(itemID, 1), SlotID(itemID, 2)},
		[]string(order.ReopenedSlots))

	evt, ok := notifier.last()
	require.True(t, ok)
	assert.ElementsMatch(t, []string{SlotID(itemID, 1), SlotID(itemID, 2)}, evt.Slots)

	// 两个槽位都已解锁，返修周期可以走完
	_, err = svc.AcknowledgeRevision(ctx, orderNo)
	require.NoError(t, err)
	f1 := seedUpload(t, svc, "fix1.png", "image/png", 1024)
	f2 := seedUpload(t, svc, "fix2.png", "image/png", 1024)
	require.NoError(t, svc.BindFile(ctx, orderNo, SlotID(itemID, 1), "photo", f1.FileID))
	require.NoError(t, svc.BindFile(ctx, orderNo, SlotID(itemID, 2), "photo", f2.FileID))
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	_, err = svc.Approve(ctx, f1.FileID, "")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, f2.FileID, "")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	order, err = svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, order.Status)
}

func TestMultipleRejectsInOneRound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 2)

	up1 := fillSlot(t, svc, orderNo, itemID, 1)
	up2 := fillSlot(t, svc, orderNo, itemID, 2)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	_, err := svc.Reject(ctx, up1.FileID, "图片模糊")
	require.NoError(t, err)
	_, err = svc.Reject(ctx, up2.FileID, "图片偏色")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	// 一次聚合就把两个被打回槽位全部解锁
	order, err := svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderRevisionRequired, order.Status)
	assert.ElementsMatch(t,
		[]string{SlotID(itemID, 1), SlotID(itemID, 2)},
		[]string(order.ReopenedSlots))

	// 再次聚合没有新结论，集合保持不变
	require.NoError(t, svc.ResolveReview(ctx, orderNo))
	order, err = svc.OrderByNo(ctx, orderNo)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{SlotID(itemID, 1), SlotID(itemID, 2)},
		[]string(order.ReopenedSlots))
}

func TestReviewTransitionGuards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	up := fillSlot(t, svc, orderNo, itemID, 1)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))

	// 认领只接受 submitted；提交时已进入 reviewing
	var stateErr *UploadStateError
	_, err := svc.ClaimUpload(ctx, up.FileID)
	assert.ErrorAs(t, err, &stateErr)

	_, err = svc.Approve(ctx, up.FileID, "")
	require.NoError(t, err)

	// 已定论素材不能再定论
	_, err = svc.Reject(ctx, up.FileID, "来晚了")
	assert.ErrorAs(t, err, &stateErr)
}

func TestCancelWindow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, _ := seedOrder(t, svc, 1)

	// awaiting_data 可取消
	order, err := svc.Cancel(ctx, orderNo)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, order.Status)
	assert.NotNil(t, order.CancelledAt)

	// 终态无出口
	_, err = svc.Checkout(ctx, orderNo)
	var illegal *model.IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
}

func TestCancelAfterShipment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	up := fillSlot(t, svc, orderNo, itemID, 1)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))
	_, err := svc.Approve(ctx, up.FileID, "")
	require.NoError(t, err)
	require.NoError(t, svc.ResolveReview(ctx, orderNo))

	_, err = svc.MarkProcessing(ctx, orderNo)
	require.NoError(t, err)
	_, err = svc.MarkShipped(ctx, orderNo)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, orderNo)
	var illegal *model.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, model.OrderShipped, illegal.From)

	_, err = svc.MarkDelivered(ctx, orderNo)
	require.NoError(t, err)
}

func TestDeleteUpload(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	up := fillSlot(t, svc, orderNo, itemID, 1)

	// 删除同步解绑，槽位完成度回到未填
	require.NoError(t, svc.DeleteUpload(ctx, up.FileID))
	var count int64
	require.NoError(t, svc.db.Model(&model.InputValue{}).
		Where("upload_id IS NOT NULL").Count(&count).Error)
	assert.Zero(t, count)

	err := svc.SubmitCollectedData(ctx, orderNo)
	var inc *SubmissionIncompleteError
	assert.ErrorAs(t, err, &inc)

	// 进审后的素材不可删
	fresh := fillSlot(t, svc, orderNo, itemID, 1)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))
	var stateErr *UploadStateError
	assert.ErrorAs(t, svc.DeleteUpload(ctx, fresh.FileID), &stateErr)
}

func TestOrderBusyWhenLockHeld(t *testing.T) {
	locker := newMemLocker()
	notifier := &memNotifier{}
	svc := NewService(newTestDB(t), locker, notifier, nil)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 1)
	fillSlot(t, svc, orderNo, itemID, 1)

	// 锁被他人持有时提交直接失败，不做任何写
	ok, err := locker.Acquire(ctx, orderNo, "someone-else")
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, svc.SubmitCollectedData(ctx, orderNo), ErrOrderBusy)

	require.NoError(t, locker.Release(ctx, orderNo, "someone-else"))
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))
}

func TestOrderView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	orderNo, itemID := seedOrder(t, svc, 2)
	fillSlot(t, svc, orderNo, itemID, 1)

	view, err := svc.OrderView(ctx, orderNo)
	require.NoError(t, err)
	require.Len(t, view.Slots, 2)
	assert.False(t, view.Complete)
	assert.True(t, view.Slots[0].Complete)
	assert.False(t, view.Slots[1].Complete)
	assert.False(t, view.Slots[0].Locked)

	// 文件输入项带素材信息
	var photo *InputView
	for i := range view.Slots[0].Inputs {
		if view.Slots[0].Inputs[i].Key == "photo" {
			photo = &view.Slots[0].Inputs[i]
		}
	}
	require.NotNil(t, photo)
	assert.True(t, photo.Filled)
	assert.NotEmpty(t, photo.FileID)
	assert.Equal(t, model.UploadSubmitted, photo.FileStatus)
}

func TestReviewQueue(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// 一个在审订单 + 一个还在采集的订单
	orderNo, itemID := seedOrder(t, svc, 1)
	fillSlot(t, svc, orderNo, itemID, 1)
	require.NoError(t, svc.SubmitCollectedData(ctx, orderNo))
	seedOrder(t, svc, 1)

	items, err := svc.ReviewQueue(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, orderNo, items[0].OrderNo)
	require.Len(t, items[0].Uploads, 1)
	assert.Equal(t, model.UploadReviewing, items[0].Uploads[0].Status)
}
