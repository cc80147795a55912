package redis

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// luaReleaseOrderLockIfMatch 仅当锁值匹配 token 时才删除，避免误删别人持有的锁。
const luaReleaseOrderLockIfMatch = `
local lockKey = KEYS[1]
local token = ARGV[1]
if redis.call('GET', lockKey) == token then
  return redis.call('DEL', lockKey)
end
return 0
`

// OrderLocker 基于 Redis SETNX 的订单互斥锁。
// 提交数据与复核必须在同一把锁内做前置检查，避免读到过期聚合。
type OrderLocker struct {
	rdb *rd.Client
	ttl time.Duration
}

func NewOrderLocker(rdb *rd.Client, ttl time.Duration) *OrderLocker {
	return &OrderLocker{rdb: rdb, ttl: ttl}
}

// Acquire 尝试获取订单锁，token 用于安全释放。返回 false 表示锁被他人持有。
func (l *OrderLocker) Acquire(ctx context.Context, orderNo, token string) (bool, error) {
	return l.rdb.SetNX(ctx, OrderLockKey(orderNo), token, l.ttl).Result()
}

// Release 安全释放订单锁，仅当 token 匹配时生效。
func (l *OrderLocker) Release(ctx context.Context, orderNo, token string) error {
	_, err := l.rdb.Eval(ctx, luaReleaseOrderLockIfMatch, []string{OrderLockKey(orderNo)}, token).Int()
	return err
}
