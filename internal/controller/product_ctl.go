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

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 获取商品列表（店铺侧会强制限定到本店）
// @Tags Product
// @Param shop_id query int false "店铺ID"
// @Param status query string false "状态筛选"
// @Param keyword query string false "标题搜索"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {array} dto.ProductView
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	shopID, _ := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.ProductFilter{
		ShopID:   shopID,
		Status:   c.Query("status"),
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}

	identity := middleware.IdentityFrom(c)
	products, total, err := ctrl.productService.ListProducts(c.Request.Context(), identity, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      0,
		"message":   "success",
		"data":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品详情
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductView
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// ==================== 写入接口 ====================

// CreateProduct 创建商品
// @Summary 在本店创建商品，初始状态 draft
// @Tags Product
// @Param body body dto.CreateProductRequest true "商品信息"
// @Success 200 {object} dto.ProductView
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	product, err := ctrl.productService.CreateProduct(c.Request.Context(), identity, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "创建成功",
		"data":    product,
	})
}

// UpdateProduct 更新商品
// @Summary 更新本店商品（discontinued 状态不可编辑）
// @Tags Product
// @Param id path int true "商品ID"
// @Param body body dto.UpdateProductRequest true "更新内容"
// @Success 200 {object} dto.ProductView
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), identity, productID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    product,
	})
}

// DeleteProduct 删除商品
// @Summary 删除本店商品（active 状态不可直接删除）
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.productService.DeleteProduct(c.Request.Context(), identity, productID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// ChangeStatus 商品状态流转
// @Summary 变更商品状态（上架审批走 moderator）
// @Tags Product
// @Param id path int true "商品ID"
// @Param body body dto.ChangeProductStatusRequest true "目标状态"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id}/status [post]
func (ctrl *ProductController) ChangeStatus(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.productService.ChangeStatus(c.Request.Context(), identity, productID, &req); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "状态已更新"})
}

// FeatureProduct 推荐商品
// @Summary 平台侧推荐商品（仅 active 状态）
// @Tags Product
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/{id}/feature [post]
func (ctrl *ProductController) FeatureProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	identity := middleware.IdentityFrom(c)
	if err := ctrl.productService.FeatureProduct(c.Request.Context(), identity, productID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "商品已推荐"})
}
