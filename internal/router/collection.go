package router

import (
	"net/http"

	"acrylic_shop/internal/fulfillment"

	"github.com/gin-gonic/gin"
)

// putValue 写单个输入项。三种动作共用一个入口：
//   - value 字段     -> 写标量（空串清除）
//   - file_id 字段   -> 绑定素材到文件输入项
//   - unbind = true  -> 解绑文件
func putValue(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SlotID   string  `json:"slot_id" binding:"required"`
			InputKey string  `json:"input_key" binding:"required"`
			Value    *string `json:"value"`
			FileID   string  `json:"file_id"`
			Unbind   bool    `json:"unbind"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}

		ctx := c.Request.Context()
		orderNo := c.Param("order_no")
		var err error
		switch {
		case req.Unbind:
			err = svc.UnbindFile(ctx, orderNo, req.SlotID, req.InputKey)
		case req.FileID != "":
			err = svc.BindFile(ctx, orderNo, req.SlotID, req.InputKey, req.FileID)
		case req.Value != nil:
			err = svc.SetValue(ctx, orderNo, req.SlotID, req.InputKey, *req.Value)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": "value、file_id、unbind 至少提供一个"})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "已保存"})
	}
}

// submitData 买家提交采集数据。完成度在订单锁内重查，
// 不完整时返回缺失槽位列表，订单状态原样。
func submitData(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.SubmitCollectedData(c.Request.Context(), c.Param("order_no")); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "已提交审核"})
	}
}

// ackRevision 买家确认返修，被打回的槽位重新开放编辑。
func ackRevision(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.AcknowledgeRevision(c.Request.Context(), c.Param("order_no"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "请修改被打回的数据项", "data": order})
	}
}
