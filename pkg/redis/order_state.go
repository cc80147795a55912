package redis

import (
	"context"
	"strings"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// OrderState 对应 Redis 内缓存的订单状态读模型。
// 只服务买家轮询，权威数据永远在 DB。
type OrderState struct {
	OrderNo       string
	Status        string
	ReopenedSlots []string
}

// GetOrderState 查询订单状态缓存。found=false 表示 key 不存在，需回源 DB。
func GetOrderState(ctx context.Context, rdb *rd.Client, orderNo string) (OrderState, bool, error) {
	key := OrderStateKey(orderNo)
	m, err := rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return OrderState{}, false, err
	}
	if len(m) == 0 {
		return OrderState{}, false, nil
	}

	out := OrderState{
		OrderNo: orderNo,
		Status:  m["status"],
	}
	if s := m["reopened_slots"]; s != "" {
		out.ReopenedSlots = strings.Split(s, ",")
	}
	return out, true, nil
}

// PutOrderState 写入订单状态缓存，并刷新 key TTL。
func PutOrderState(ctx context.Context, rdb *rd.Client, st OrderState, ttl time.Duration) error {
	key := OrderStateKey(st.OrderNo)
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, key,
		"order_no", st.OrderNo,
		"status", st.Status,
		"reopened_slots", strings.Join(st.ReopenedSlots, ","),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// DropOrderState 状态变更后使缓存失效，下次轮询回源重建。
func DropOrderState(ctx context.Context, rdb *rd.Client, orderNo string) error {
	return rdb.Del(ctx, OrderStateKey(orderNo)).Err()
}
