package queue

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"acrylic_shop/internal/model"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// Consumer 消费订单事件并落通知记录，供后台查询“谁在什么时候被通知了什么”。
// 真正的触达（邮件/站内信）由下游系统基于 notifications 表驱动，不在本核心内。
type Consumer struct {
	r  *kafka.Reader
	db *gorm.DB
}

func NewConsumer(brokers []string, topic, groupID string, db *gorm.DB) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
		db: db,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancel / 连接断开等
		}

		var evt OrderEvent
		if err := json.Unmarshal(m.Value, &evt); err != nil {
			log.Printf("consumer unmarshal: %v", err)
			continue
		}
		if err := evt.Validate(); err != nil {
			log.Printf("consumer drop invalid event: %v", err)
			continue
		}

		n := &model.Notification{
			EventID: evt.EventID,
			OrderNo: evt.OrderNo,
			Event:   evt.Event,
			Payload: string(m.Value),
			Status:  model.NotificationSent,
		}

		if err := c.db.Create(n).Error; err != nil {
			// 幂等：重复消息导致 UNIQUE 冲突，直接当作成功
			if errorsLikeUnique(err) {
				continue
			}
			log.Printf("consumer db create: %v", err)
			continue
		}
	}
}

func errorsLikeUnique(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
