package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 聚合运行时配置，尽量通过环境变量注入，避免硬编码。
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	RedisAddr string
	RedisDB   int

	// Kafka 集群地址（逗号分隔）、Topic、消费者组
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Redis Stream outbox（订单事件原子入流，Relay 异步转 Kafka）
	OrderEventStream   string
	OrderEventGroup    string
	OrderEventConsumer string

	// 上传接口限流与订单锁/状态缓存策略
	UploadRateLimit  int
	UploadRateWindow time.Duration
	OrderLockTTL     time.Duration
	StateCacheTTL    time.Duration

	// MinIO 对象存储
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// 后台接口的简单管理员令牌（鉴权体系在本核心之外）
	AdminToken string
}

// Load 读取并校验配置，缺失时使用默认值。
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DBPath:             getEnv("DB_PATH", "acrylic_shop.db"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            0,
		KafkaBrokers:       splitCSV(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "acrylic-order-events"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "acrylic-notification-consumer"),
		OrderEventStream:   getEnv("ORDER_EVENT_STREAM", "acrylic:order_events"),
		OrderEventGroup:    getEnv("ORDER_EVENT_GROUP", "acrylic-relay-group"),
		OrderEventConsumer: getEnv("ORDER_EVENT_CONSUMER", "acrylic-relay-1"),
		UploadRateLimit:    60,
		UploadRateWindow:   time.Minute,
		OrderLockTTL:       10 * time.Second,
		StateCacheTTL:      5 * time.Minute,
		MinioEndpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:        getEnv("MINIO_BUCKET", "acrylic-uploads"),
		MinioUseSSL:        false,
		AdminToken:         getEnv("ADMIN_TOKEN", "dev-admin-token"),
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	rateLimit, err := getEnvInt("UPLOAD_RATE_LIMIT", cfg.UploadRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid UPLOAD_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("UPLOAD_RATE_LIMIT must be > 0")
	}
	cfg.UploadRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("UPLOAD_RATE_WINDOW_SEC", int(cfg.UploadRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid UPLOAD_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("UPLOAD_RATE_WINDOW_SEC must be > 0")
	}
	cfg.UploadRateWindow = time.Duration(rateWindowSec) * time.Second

	lockTTLSec, err := getEnvInt("ORDER_LOCK_TTL_SEC", int(cfg.OrderLockTTL.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid ORDER_LOCK_TTL_SEC: %w", err)
	}
	if lockTTLSec <= 0 {
		return AppConfig{}, fmt.Errorf("ORDER_LOCK_TTL_SEC must be > 0")
	}
	cfg.OrderLockTTL = time.Duration(lockTTLSec) * time.Second

	stateTTLSec, err := getEnvInt("STATE_CACHE_TTL_SEC", int(cfg.StateCacheTTL.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid STATE_CACHE_TTL_SEC: %w", err)
	}
	if stateTTLSec <= 0 {
		return AppConfig{}, fmt.Errorf("STATE_CACHE_TTL_SEC must be > 0")
	}
	cfg.StateCacheTTL = time.Duration(stateTTLSec) * time.Second

	if v := strings.TrimSpace(os.Getenv("MINIO_USE_SSL")); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return AppConfig{}, fmt.Errorf("invalid MINIO_USE_SSL: %w", err)
		}
		cfg.MinioUseSSL = useSSL
	}

	if len(cfg.KafkaBrokers) == 0 {
		return AppConfig{}, fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if cfg.KafkaTopic == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if cfg.KafkaGroupID == "" {
		return AppConfig{}, fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}
	if cfg.OrderEventStream == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_STREAM must not be empty")
	}
	if cfg.OrderEventGroup == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_GROUP must not be empty")
	}
	if cfg.OrderEventConsumer == "" {
		return AppConfig{}, fmt.Errorf("ORDER_EVENT_CONSUMER must not be empty")
	}
	if cfg.MinioBucket == "" {
		return AppConfig{}, fmt.Errorf("MINIO_BUCKET must not be empty")
	}

	return cfg, nil
}

// getEnv 读取字符串环境变量，若为空则返回默认值。
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt 读取整数环境变量，若为空则返回默认值。
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// splitCSV 将逗号分隔字符串解析为字符串切片。
func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
