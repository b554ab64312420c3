package dto

// ==================== 请求 ====================

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Title         string   `json:"title" binding:"required,max=255"`
	Description   string   `json:"description"`
	LocalSKU      string   `json:"local_sku"`
	CertNumber    string   `json:"cert_number" binding:"required"`
	CertAuthority string   `json:"cert_authority" binding:"required"`
	PriceAmount   int64    `json:"price_amount" binding:"required,gt=0"`
	CurrencyCode  string   `json:"currency_code"`
	Quantity      int      `json:"quantity"`
	Tags          []string `json:"tags"`
	Materials     []string `json:"materials"`
}

// UpdateProductRequest 更新商品请求
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	PriceAmount *int64   `json:"price_amount"`
	Quantity    *int     `json:"quantity"`
	Tags        []string `json:"tags"`
}

// ChangeProductStatusRequest 商品状态流转请求
type ChangeProductStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	ReviewNote string `json:"review_note"`
}

// ==================== 响应 ====================

// ProductView 商品视图
type ProductView struct {
	ID            int64    `json:"id"`
	ShopID        int64    `json:"shop_id"`
	Title         string   `json:"title"`
	LocalSKU      string   `json:"local_sku"`
	Status        string   `json:"status"`
	CertNumber    string   `json:"cert_number"`
	CertAuthority string   `json:"cert_authority"`
	PriceAmount   int64    `json:"price_amount"`
	CurrencyCode  string   `json:"currency_code"`
	Quantity      int      `json:"quantity"`
	OutOfStock    bool     `json:"out_of_stock"`
	Tags          []string `json:"tags"`
}
