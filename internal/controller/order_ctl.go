package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/middleware"
	"certmart_v1_202608/internal/repository"
	"certmart_v1_202608/internal/service"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ==================== 查询接口 ====================

// GetOrders 获取订单列表
// @Summary 获取订单列表（买家只看自己的，店铺侧只看本店的）
// @Tags Order
// @Param shop_id query int false "店铺ID"
// @Param status query string false "状态筛选"
// @Param keyword query string false "订单号搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {array} dto.OrderView
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	shopID, _ := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.OrderFilter{
		ShopID:   shopID,
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}

	identity := middleware.IdentityFrom(c)
	orders, total, err := ctrl.orderService.ListOrders(c.Request.Context(), identity, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      0,
		"message":   "success",
		"data":      orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetOrder 获取订单详情
// @Summary 获取单个订单详情（买家本人或本店成员）
// @Tags Order
// @Param id path int true "订单ID"
// @Success 200 {object} dto.OrderView
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	order, err := ctrl.orderService.GetOrder(c.Request.Context(), identity, orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    order,
	})
}

// ==================== 写入接口 ====================

// PlaceOrder 下单
// @Summary 买家下单，同一订单限同一店铺商品
// @Tags Order
// @Param body body dto.PlaceOrderRequest true "下单信息"
// @Success 200 {object} dto.OrderView
// @Router /api/orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	order, err := ctrl.orderService.PlaceOrder(c.Request.Context(), identity, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "下单成功",
		"data":    order,
	})
}

// ChangeStatus 订单状态流转
// @Summary 变更订单状态（取消/退款/发货等按角色校验）
// @Tags Order
// @Param id path int true "订单ID"
// @Param body body dto.ChangeOrderStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{}
// @Router /api/orders/{id}/status [post]
func (ctrl *OrderController) ChangeStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.orderService.ChangeStatus(c.Request.Context(), identity, orderID, req.Status); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "状态已更新"})
}

// AttachTracking 录入物流单号
// @Summary 录入承运商与运单号（processing / shipped 窗口内）
// @Tags Order
// @Param id path int true "订单ID"
// @Param body body dto.AttachTrackingRequest true "物流信息"
// @Success 200 {object} map[string]interface{}
// @Router /api/orders/{id}/tracking [post]
func (ctrl *OrderController) AttachTracking(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AttachTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.orderService.AttachTracking(c.Request.Context(), identity, orderID, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "物流信息已录入"})
}
