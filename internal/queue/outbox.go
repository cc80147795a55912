package queue

import (
	"context"
	"strconv"
	"strings"

	rd "github.com/redis/go-redis/v9"
)

// Outbox 把订单事件原子写入 Redis Stream，由 Relay 异步转发 Kafka。
// 事件发布与订单事务解耦，XADD 很快，不会拖长订单锁持有时间。
type Outbox struct {
	rdb    *rd.Client
	stream string
}

func NewOutbox(rdb *rd.Client, stream string) *Outbox {
	return &Outbox{rdb: rdb, stream: stream}
}

// Publish 入流一条订单事件。
func (o *Outbox) Publish(ctx context.Context, evt OrderEvent) error {
	if err := evt.Validate(); err != nil {
		return err
	}
	return o.rdb.XAdd(ctx, &rd.XAddArgs{
		Stream: o.stream,
		Values: map[string]interface{}{
			"event_id":    evt.EventID,
			"order_no":    evt.OrderNo,
			"event":       evt.Event,
			"slots":       strings.Join(evt.Slots, ","),
			"occurred_at": strconv.FormatInt(evt.OccurredAt, 10),
		},
	}).Err()
}
