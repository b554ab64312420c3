package router

import (
	"github.com/gin-gonic/gin"

	"certmart_v1_202608/internal/controller"
	"certmart_v1_202608/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	userCtl *controller.UserController,
	shopCtl *controller.ShopController,
	productCtl *controller.ProductController,
	orderCtl *controller.OrderController) {

	api := r.Group("/api")
	{
		// auth 鉴权组（无需登录）
		auth := api.Group("/auth")
		{
			// POST /api/auth/register
			auth.POST("/register", userCtl.Register)

			// POST /api/auth/login
			auth.POST("/login", userCtl.Login)

			// POST /api/auth/refresh
			auth.POST("/refresh", userCtl.RefreshToken)
		}

		// 以下路由全部要求登录态，具体权限在 service 层按矩阵判定
		authed := api.Group("")
		authed.Use(middleware.JWTAuth())

		// shop 店铺管理
		shops := authed.Group("/shops")
		{
			shops.GET("/:id", shopCtl.GetShop)
			shops.PUT("/:id", shopCtl.UpdateShop)

			// 平台侧审核
			shops.POST("/:id/approve", shopCtl.ApproveShop)
			shops.POST("/:id/suspend", shopCtl.SuspendShop)

			// 成员管理
			shops.GET("/:id/members", shopCtl.ListMembers)
			shops.POST("/:id/members", shopCtl.AddMember)
			shops.DELETE("/:id/members/:user_id", shopCtl.RemoveMember)
		}

		// product 商品组
		products := authed.Group("/products")
		{
			products.GET("", productCtl.GetProducts)
			products.GET("/:id", productCtl.GetProduct)
			products.POST("", productCtl.CreateProduct)
			products.PUT("/:id", productCtl.UpdateProduct)
			products.DELETE("/:id", productCtl.DeleteProduct)
			products.POST("/:id/status", productCtl.ChangeStatus)
			products.POST("/:id/feature", productCtl.FeatureProduct)
		}

		// order 订单组
		orders := authed.Group("/orders")
		{
			orders.GET("", orderCtl.GetOrders)
			orders.GET("/:id", orderCtl.GetOrder)
			orders.POST("", orderCtl.PlaceOrder)
			orders.POST("/:id/status", orderCtl.ChangeStatus)
			orders.POST("/:id/tracking", orderCtl.AttachTracking)
		}
	}
}
