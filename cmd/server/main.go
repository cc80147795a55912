package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"acrylic_shop/internal/config"
	"acrylic_shop/internal/fulfillment"
	"acrylic_shop/internal/model"
	"acrylic_shop/internal/queue"
	"acrylic_shop/internal/router"
	"acrylic_shop/internal/storage"
	rediskey "acrylic_shop/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 连接 SQLite，自动建表
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.InputValue{},
		&model.Upload{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// 2. Redis：订单锁、事件去重、状态缓存、上传限流、事件 outbox
	rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	// 3. MinIO：素材字节存储
	blob, err := storage.New(storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("minio: %v", err)
	}
	if err := blob.EnsureBucket(ctx); err != nil {
		log.Fatalf("minio bucket: %v", err)
	}

	// 4. 事件链路：Service -> Redis Stream outbox -> Relay -> Kafka -> Consumer
	producer := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	outbox := queue.NewOutbox(rdb, cfg.OrderEventStream)
	relay := queue.NewRelay(rdb, producer, cfg.OrderEventStream, cfg.OrderEventGroup, cfg.OrderEventConsumer)
	go relay.Run(ctx)

	consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, db)
	defer consumer.Close()
	go consumer.Run(ctx)

	// 5. 履约核心与 HTTP 层
	locker := rediskey.NewOrderLocker(rdb, cfg.OrderLockTTL)
	svc := fulfillment.NewService(db, locker, outbox, rdb)

	r := gin.Default()
	router.Setup(r, db, rdb, svc, blob, cfg)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("http: %v", err)
	}
}
