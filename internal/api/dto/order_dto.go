package dto

// ==================== 请求 ====================

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	ShopID          int64                  `json:"shop_id" binding:"required"`
	Items           []PlaceOrderItem       `json:"items" binding:"required,min=1"`
	ShippingAddress map[string]interface{} `json:"shipping_address" binding:"required"`
}

// PlaceOrderItem 下单商品项
type PlaceOrderItem struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// ChangeOrderStatusRequest 订单状态流转请求
type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AttachTrackingRequest 录入物流单号请求
type AttachTrackingRequest struct {
	CarrierCode    string `json:"carrier_code" binding:"required"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// ==================== 响应 ====================

// OrderView 订单视图
type OrderView struct {
	ID               int64           `json:"id"`
	OrderNo          string          `json:"order_no"`
	ShopID           int64           `json:"shop_id"`
	BuyerUserID      int64           `json:"buyer_user_id"`
	Status           string          `json:"status"`
	GrandTotalAmount int64           `json:"grand_total_amount"`
	Currency         string          `json:"currency"`
	TrackingNumber   string          `json:"tracking_number,omitempty"`
	Items            []OrderItemView `json:"items,omitempty"`
}

// OrderItemView 订单项视图
type OrderItemView struct {
	ProductID   int64  `json:"product_id"`
	Title       string `json:"title"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	PriceAmount int64  `json:"price_amount"`
	CertNumber  string `json:"cert_number"`
}
