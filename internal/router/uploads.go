package router

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"acrylic_shop/internal/fulfillment"
	"acrylic_shop/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 单次上传上限 50MB，具体输入项还有各自的 MaxSizeMB 约束（绑定时校验）。
const maxUploadBytes = 50 << 20

// createUpload 裸上传：先把字节写进 blob 存储（慢路径），
// 成功后才落 Upload 元数据行。blob 失败不产生任何记录。
func createUpload(svc *fulfillment.Service, blob storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.PostForm("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "user_id 无效"})
			return
		}

		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "缺少 file 字段"})
			return
		}
		if fh.Size <= 0 || fh.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "文件大小超出限制"})
			return
		}

		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		defer src.Close()

		mimeType := fh.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		objectKey := fmt.Sprintf("uploads/%d/%s%s", userID, uuid.New().String(), filepath.Ext(fh.Filename))

		fileURL, err := blob.Put(c.Request.Context(), objectKey, src, fh.Size, mimeType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": "文件上传失败"})
			return
		}

		up, err := svc.RegisterUpload(c.Request.Context(), userID, fh.Filename, objectKey, fileURL, fh.Size, mimeType)
		if err != nil {
			// 元数据落库失败，回收已写入的 blob 对象
			if rmErr := blob.Remove(context.WithoutCancel(c.Request.Context()), objectKey); rmErr != nil {
				log.Printf("cleanup orphan object %s: %v", objectKey, rmErr)
			}
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "上传成功", "data": up})
	}
}

// deleteUpload 删除尚未进审的素材。元数据先删，blob 对象尽力而为清理。
func deleteUpload(svc *fulfillment.Service, blob storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileID := c.Param("file_id")
		up, err := svc.UploadByFileID(c.Request.Context(), fileID)
		if err != nil {
			fail(c, err)
			return
		}
		if err := svc.DeleteUpload(c.Request.Context(), fileID); err != nil {
			fail(c, err)
			return
		}
		if err := blob.Remove(context.WithoutCancel(c.Request.Context()), up.ObjectKey); err != nil {
			log.Printf("remove blob object %s: %v", up.ObjectKey, err)
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "已删除"})
	}
}
