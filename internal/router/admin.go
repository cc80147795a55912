package router

import (
	"log"
	"net/http"

	"acrylic_shop/internal/fulfillment"

	"github.com/gin-gonic/gin"
)

// reviewQueue 审核工作台：所有在审订单与其待定素材。
func reviewQueue(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ReviewQueue(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": items})
	}
}

// claimUpload 审核员认领素材（advisory，可跳过直接定论）。
func claimUpload(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		up, err := svc.ClaimUpload(c.Request.Context(), c.Param("file_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "已认领", "data": up})
	}
}

// approveUpload 通过素材，随后复核订单聚合结论。
func approveUpload(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Notes string `json:"notes"`
		}
		_ = c.ShouldBindJSON(&req)

		up, err := svc.Approve(c.Request.Context(), c.Param("file_id"), req.Notes)
		if err != nil {
			fail(c, err)
			return
		}
		if err := svc.ResolveReviewForUpload(c.Request.Context(), up); err != nil {
			// 单个素材的结论已落库，聚合复核失败会在下一次定论时重算
			log.Printf("resolve review after approve file=%s: %v", up.FileID, err)
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "已通过", "data": up})
	}
}

// rejectUpload 打回素材，必须附整改说明。
func rejectUpload(svc *fulfillment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Notes string `json:"notes"`
		}
		_ = c.ShouldBindJSON(&req)

		up, err := svc.Reject(c.Request.Context(), c.Param("file_id"), req.Notes)
		if err != nil {
			fail(c, err)
			return
		}
		if err := svc.ResolveReviewForUpload(c.Request.Context(), up); err != nil {
			log.Printf("resolve review after reject file=%s: %v", up.FileID, err)
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "已打回", "data": up})
	}
}
