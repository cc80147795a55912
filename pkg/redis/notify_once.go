package redis

import (
	"context"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// luaNotifyOnce 通过 SETNX 锁保证“同一事件只投递一次”。
const luaNotifyOnce = `
local lockKey = KEYS[1]
local ttlSec = tonumber(ARGV[1])

if redis.call('SETNX', lockKey, '1') == 1 then
  redis.call('EXPIRE', lockKey, ttlSec)
  return 1
end
return 0
`

// NotifyOnce 幂等投递判定：
// - 首次调用返回 true，调用方负责真正发事件
// - 重复调用返回 false（不会重复通知买家/管理员）
func NotifyOnce(ctx context.Context, rdb *rd.Client, eventID string) (bool, error) {
	const lockTTLSeconds = int64((7 * 24 * time.Hour) / time.Second)

	n, err := rdb.Eval(ctx, luaNotifyOnce, []string{NotifyOnceKey(eventID)}, lockTTLSeconds).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
