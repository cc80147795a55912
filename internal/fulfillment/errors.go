package fulfillment

import (
	"errors"
	"fmt"

	"acrylic_shop/internal/model"
)

// ErrMissingReason 打回必须附带可执行的整改说明，空说明直接拒绝操作。
var ErrMissingReason = errors.New("reject requires reviewer notes")

// ErrOrderBusy 同一订单的提交/复核操作互斥，未拿到订单锁时返回。
var ErrOrderBusy = errors.New("order is locked by another operation")

// ErrSlotLocked 返修周期内只有被打回的槽位可写，其余槽位保持只读。
var ErrSlotLocked = errors.New("slot is locked during revision cycle")

// ErrCollectionClosed 订单不在 awaiting_data 状态，采集数据只读。
var ErrCollectionClosed = errors.New("order is not accepting data collection")

// ErrUnknownInput 输入项 key 不在该订单项的 schema 里。
var ErrUnknownInput = errors.New("input key not declared in schema")

// ErrUploadRejected 被打回的素材是终态，不能再绑定到槽位。
var ErrUploadRejected = errors.New("rejected upload cannot be bound")

// InvalidInputTypeError 表示客户端对输入项用错了操作，
// 比如向标量项绑定文件、向文件项写字符串。
type InvalidInputTypeError struct {
	Key  string
	Type model.InputType
}

func (e *InvalidInputTypeError) Error() string {
	return fmt.Sprintf("input %q has type %s, operation not allowed", e.Key, e.Type)
}

// SubmissionIncompleteError 携带未完成槽位列表，供前端定位到具体单元。
type SubmissionIncompleteError struct {
	Incomplete []string
}

func (e *SubmissionIncompleteError) Error() string {
	return fmt.Sprintf("submission incomplete: %d slot(s) unfinished", len(e.Incomplete))
}

// UploadStateError 审核操作只接受 submitted/reviewing 状态的素材。
type UploadStateError struct {
	FileID string
	Status model.UploadStatus
}

func (e *UploadStateError) Error() string {
	return fmt.Sprintf("upload %s is %s, review operation not allowed", e.FileID, e.Status)
}
