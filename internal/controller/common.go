package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"certmart_v1_202608/internal/authz"
	"certmart_v1_202608/internal/repository"
	"certmart_v1_202608/internal/service"
)

// ==================== 统一错误映射 ====================

// writeError 业务错误统一转 HTTP 响应
// 归属类/角色类拒绝一律 403 且不带细节，避免探测资源归属；
// 状态流转冲突返回 409 并附 from/to 便于前端提示刷新
func writeError(c *gin.Context, err error) {
	var transErr *authz.TransitionError
	switch {
	case errors.Is(err, authz.ErrResourceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "资源不存在"})
	case errors.Is(err, authz.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "无权限访问"})
	case errors.As(err, &transErr):
		c.JSON(http.StatusConflict, gin.H{
			"code":    409,
			"message": "状态流转不合法",
			"from":    transErr.From,
			"to":      transErr.To,
		})
	case errors.Is(err, repository.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"code": 409, "message": err.Error()})
	case errors.Is(err, service.ErrProductNotSellable),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrCrossShopOrder),
		errors.Is(err, service.ErrTrackingWindow),
		errors.Is(err, service.ErrShopNotActive),
		errors.Is(err, service.ErrMemberExists),
		errors.Is(err, service.ErrOwnerImmutable),
		errors.Is(err, service.ErrUsernameExists):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": err.Error()})
	case errors.Is(err, service.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "操作失败: " + err.Error()})
	}
}
