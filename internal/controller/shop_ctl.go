package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/middleware"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/service"
)

type ShopController struct {
	shopService *service.ShopService
}

func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

func toShopView(shop *model.Shop) dto.ShopView {
	return dto.ShopView{
		ID:            shop.ID,
		ShopName:      shop.ShopName,
		Title:         shop.Title,
		Region:        shop.Region,
		CertAuthority: shop.CertAuthority,
		CertNumber:    shop.CertNumber,
		Status:        shop.Status,
		ReviewAverage: shop.ReviewAverage,
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的 " + name})
		return 0, false
	}
	return id, true
}

// ==================== 查询接口 ====================

// GetShop 获取店铺详情
// @Summary 获取单个店铺详情
// @Tags Shop
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.ShopView
// @Router /api/shops/{id} [get]
func (ctrl *ShopController) GetShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := ctrl.shopService.GetShop(c.Request.Context(), shopID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toShopView(shop),
	})
}

// ==================== 管理接口 ====================

// UpdateShop 更新店铺资料
// @Summary 更新本店资料（店主/店铺管理员）
// @Tags Shop
// @Param id path int true "店铺ID"
// @Param body body dto.UpdateShopRequest true "更新内容"
// @Success 200 {object} dto.ShopView
// @Router /api/shops/{id} [put]
func (ctrl *ShopController) UpdateShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	shop, err := ctrl.shopService.UpdateShop(c.Request.Context(), identity, shopID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    toShopView(shop),
	})
}

// ApproveShop 审核通过店铺
// @Summary 平台侧审核通过店铺（moderator / platform_admin）
// @Tags Shop
// @Param id path int true "店铺ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/shops/{id}/approve [post]
func (ctrl *ShopController) ApproveShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.shopService.ApproveShop(c.Request.Context(), identity, shopID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "店铺已通过审核"})
}

// SuspendShop 停用店铺
// @Summary 平台侧停用店铺（moderator / platform_admin）
// @Tags Shop
// @Param id path int true "店铺ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/shops/{id}/suspend [post]
func (ctrl *ShopController) SuspendShop(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.shopService.SuspendShop(c.Request.Context(), identity, shopID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "店铺已停用"})
}

// ==================== 成员管理 ====================

// ListMembers 成员列表
// @Summary 列出店铺成员（店主或平台侧）
// @Tags Shop
// @Param id path int true "店铺ID"
// @Success 200 {array} dto.ShopMemberView
// @Router /api/shops/{id}/members [get]
func (ctrl *ShopController) ListMembers(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	members, err := ctrl.shopService.ListMembers(c.Request.Context(), identity, shopID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    members,
	})
}

// AddMember 添加成员
// @Summary 添加店铺成员（仅店主或平台侧）
// @Tags Shop
// @Param id path int true "店铺ID"
// @Param body body dto.AddMemberRequest true "成员信息"
// @Success 200 {object} map[string]interface{}
// @Router /api/shops/{id}/members [post]
func (ctrl *ShopController) AddMember(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.shopService.AddMember(c.Request.Context(), identity, shopID, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "成员已添加"})
}

// RemoveMember 移除成员
// @Summary 移除店铺成员（店主本人不可移除）
// @Tags Shop
// @Param id path int true "店铺ID"
// @Param user_id path int true "成员用户ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/shops/{id}/members/{user_id} [delete]
func (ctrl *ShopController) RemoveMember(c *gin.Context) {
	shopID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.shopService.RemoveMember(c.Request.Context(), identity, shopID, userID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "成员已移除"})
}
