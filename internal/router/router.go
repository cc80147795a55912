package router

import (
	"errors"
	"net/http"

	"acrylic_shop/internal/config"
	"acrylic_shop/internal/fulfillment"
	"acrylic_shop/internal/middleware"
	"acrylic_shop/internal/model"
	"acrylic_shop/internal/storage"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup 注册全部 HTTP 路由。
func Setup(r *gin.Engine, db *gorm.DB, rdb *rd.Client, svc *fulfillment.Service, blob storage.Store, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	// Catalog
	r.GET("/api/products", listProducts(db))
	r.POST("/api/products", createProduct(db))

	// Orders
	r.POST("/api/orders", createOrder(svc))
	r.GET("/api/orders/:order_no", getOrder(svc))
	r.GET("/api/orders/:order_no/status", getOrderStatus(svc, rdb, cfg))
	r.POST("/api/orders/:order_no/checkout", checkout(svc))
	r.POST("/api/orders/:order_no/payment", paymentConfirmed(svc))
	r.POST("/api/orders/:order_no/cancel", cancelOrder(svc))

	// Data collection
	r.PUT("/api/orders/:order_no/values", putValue(svc))
	r.POST("/api/orders/:order_no/submit", submitData(svc))
	r.POST("/api/orders/:order_no/revision/ack", ackRevision(svc))

	// Uploads（上传字节是慢路径，单独限流）
	uploads := r.Group("/api/uploads")
	if rdb != nil {
		uploads.Use(middleware.RedisRateLimit(rdb, cfg.UploadRateLimit, cfg.UploadRateWindow))
	}
	uploads.POST("", createUpload(svc, blob))
	r.DELETE("/api/uploads/:file_id", deleteUpload(svc, blob))

	// Admin
	admin := r.Group("/api/admin", adminOnly(cfg.AdminToken))
	admin.GET("/orders/reviewing", reviewQueue(svc))
	admin.POST("/uploads/:file_id/claim", claimUpload(svc))
	admin.POST("/uploads/:file_id/approve", approveUpload(svc))
	admin.POST("/uploads/:file_id/reject", rejectUpload(svc))
	admin.POST("/orders/:order_no/process", opsTransition(svc, (*fulfillment.Service).MarkProcessing))
	admin.POST("/orders/:order_no/ship", opsTransition(svc, (*fulfillment.Service).MarkShipped))
	admin.POST("/orders/:order_no/deliver", opsTransition(svc, (*fulfillment.Service).MarkDelivered))
}

// adminOnly 后台接口要求简单管理员 token，完整鉴权体系在本核心之外。
func adminOnly(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "msg": "admin token 无效"})
			return
		}
		c.Next()
	}
}

// fail 把领域错误映射成统一响应。所有失败都是前置条件/逻辑违规，不做自动重试。
func fail(c *gin.Context, err error) {
	var (
		incomplete *fulfillment.SubmissionIncompleteError
		illegal    *model.IllegalTransitionError
		badType    *fulfillment.InvalidInputTypeError
		schemaErr  *model.SchemaValidationError
		upState    *fulfillment.UploadStateError
	)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "资源不存在"})
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{
			"code": 400,
			"msg":  "还有未完成的数据项，无法提交",
			"data": gin.H{"incomplete_slots": incomplete.Incomplete},
		})
	case errors.As(err, &illegal):
		c.JSON(http.StatusConflict, gin.H{"code": 409, "msg": "订单状态已变化，请刷新后重试"})
	case errors.Is(err, fulfillment.ErrOrderBusy):
		c.JSON(http.StatusConflict, gin.H{"code": 409, "msg": "订单正在处理中，请稍后重试"})
	case errors.Is(err, fulfillment.ErrMissingReason):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "打回必须填写整改说明"})
	case errors.Is(err, fulfillment.ErrSlotLocked):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "该数据项已锁定，只有被打回的部分可以修改"})
	case errors.Is(err, fulfillment.ErrCollectionClosed):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "当前订单状态不允许修改定制数据"})
	case errors.Is(err, fulfillment.ErrUnknownInput):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "数据项不存在"})
	case errors.Is(err, fulfillment.ErrUploadRejected):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "该素材已被打回，请上传新文件"})
	case errors.As(err, &badType):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "数据项类型不匹配"})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": schemaErr.Error()})
	case errors.As(err, &upState):
		c.JSON(http.StatusConflict, gin.H{"code": 409, "msg": "素材当前状态不允许该操作"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
	}
}

// listProducts 查询商品列表。
func listProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list []model.Product
		if err := db.Find(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": list})
	}
}

// createProduct 创建商品。采集 schema 在这里做编辑期校验，
// 配置错误当场打回，绝不会等到订单阶段才爆。
func createProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name   string                  `json:"name" binding:"required"`
			Price  int64                   `json:"price" binding:"required,min=1"`
			Schema model.RequirementSchema `json:"requirement_schema"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.Schema.Validate(); err != nil {
			fail(c, err)
			return
		}
		p := &model.Product{
			Name:              req.Name,
			Price:             req.Price,
			RequirementSchema: req.Schema,
		}
		if err := db.Create(p).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": p})
	}
}
