package router

import (
	"context"
	"net/http"

	"acrylic_shop/internal/config"
	"acrylic_shop/internal/fulfillment"
	"acrylic_shop/internal/model"
	rediskey "acrylic_shop/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

// createOrder 买家下单。商品名/单价/采集 schema 在此刻快照进订单项，
// 后续改商品不影响已有订单。
func createOrder(svc *fulfillment.Service) gin.HandlerFunc {
	type line struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}
	return func(c *gin.Context) {
		var req struct {
			UserID int64  `json:"user_id" binding:"required"`
			Lines  []line `json:"lines" binding:"required,min=1,dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		lines := make([]fulfillment.OrderLine, 0, len(req.Lines))
		for _, ln := range req.Lines {
			lines = append(lines, fulfillment.OrderLine{ProductID: ln.ProductID, Quantity: ln.Quantity})
		}
		order, err := svc.CreateOrder(c.Request.Context(), req.UserID, lines)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "下单成功", "data": order})
	}
}

// getOrder 订单采集全景视图：槽位、完成度、锁定范围。
func getOrder(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.OrderView(c.Request.Context(), c.Param("order_no"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": view})
	}
}

// getOrderStatus 买家轮询订单状态。先查 Redis 缓存，miss 回源 DB 并回填。
// 权威数据永远在 DB，缓存只为扛轮询读。
func getOrderStatus(svc *fulfillment.Service, rdb *rd.Client, cfg config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orderNo := c.Param("order_no")

		if rdb != nil {
			if st, found, err := rediskey.GetOrderState(ctx, rdb, orderNo); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
					"order_no":       st.OrderNo,
					"status":         st.Status,
					"reopened_slots": st.ReopenedSlots,
				}})
				return
			}
		}

		order, err := svc.OrderByNo(ctx, orderNo)
		if err != nil {
			fail(c, err)
			return
		}
		if rdb != nil {
			// 回填失败不影响响应
			_ = rediskey.PutOrderState(context.WithoutCancel(ctx), rdb, rediskey.OrderState{
				OrderNo:       order.OrderNo,
				Status:        string(order.Status),
				ReopenedSlots: order.ReopenedSlots,
			}, cfg.StateCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
			"order_no":       order.OrderNo,
			"status":         order.Status,
			"reopened_slots": []string(order.ReopenedSlots),
		}})
	}
}

// checkout 结算：pending -> awaiting_payment。
func checkout(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Checkout(c.Request.Context(), c.Param("order_no"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "待支付", "data": order})
	}
}

// paymentConfirmed 支付回调钩子。支付系统在外部，这里只接收结论。
func paymentConfirmed(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.OnPaymentConfirmed(c.Request.Context(), c.Param("order_no"))
		if err != nil {
			fail(c, err)
			return
		}
		msg := "支付成功，请填写定制数据"
		if order.Status == model.OrderConfirmed {
			msg = "支付成功，订单已确认"
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": msg, "data": order})
	}
}

// cancelOrder 取消订单（仅限进入制作前）。
func cancelOrder(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Cancel(c.Request.Context(), c.Param("order_no"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "订单已取消", "data": order})
	}
}

// opsTransition 履约运营动作（备料/发货/签收）的通用包装。
func opsTransition(svc *fulfillment.Service, fn func(*fulfillment.Service, context.Context, string) (*model.Order, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := fn(svc, c.Request.Context(), c.Param("order_no"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": order})
	}
}
