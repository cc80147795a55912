package redis

import "fmt"

// OrderLockKey 订单级互斥锁键（提交/复核串行化边界）。
func OrderLockKey(orderNo string) string {
	return fmt.Sprintf("acrylic:order:lock:%s", orderNo)
}

// NotifyOnceKey 标记某个订单事件是否已投递过。
func NotifyOnceKey(eventID string) string {
	return fmt.Sprintf("acrylic:notify:sent:%s", eventID)
}

// OrderStateKey 缓存订单状态读模型，供买家轮询。
func OrderStateKey(orderNo string) string {
	return fmt.Sprintf("acrylic:order:state:%s", orderNo)
}
