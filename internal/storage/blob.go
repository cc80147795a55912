// Package storage 封装对象存储。上传字节是整条链路里最慢的一步，
// 必须先落 blob 再做槽位绑定的快速元数据写，订单锁不等字节。
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store 是订单核心看到的 blob 存储接口：字节进去，可访问 URL 出来。
// 上传失败只返回 error，调用方不会落任何 Upload 记录。
type Store interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// Config MinIO 连接配置。
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Client 基于 MinIO 的 Store 实现。
type Client struct {
	mc     *minio.Client
	bucket string
	cfg    Config
}

func New(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Client{mc: mc, bucket: cfg.Bucket, cfg: cfg}, nil
}

// EnsureBucket 启动时确保 bucket 存在。
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Put 写入对象并返回可访问 URL。
func (c *Client) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return c.publicURL(objectName), nil
}

// Remove 删除对象（素材删除时调用，失败只记日志，不阻塞元数据清理）。
func (c *Client) Remove(ctx context.Context, objectName string) error {
	if err := c.mc.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (c *Client) publicURL(objectName string) string {
	protocol := "http"
	if c.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, c.cfg.Endpoint, c.bucket, objectName)
}
