package dto

// ==================== 请求 ====================

// UpdateShopRequest 更新店铺资料请求
type UpdateShopRequest struct {
	Title        *string `json:"title"`
	Announcement *string `json:"announcement"`
}

// AddMemberRequest 添加店铺成员请求
type AddMemberRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin staff"`
}

// ==================== 响应 ====================

// ShopView 店铺视图
type ShopView struct {
	ID            int64   `json:"id"`
	ShopName      string  `json:"shop_name"`
	Title         string  `json:"title"`
	Region        string  `json:"region"`
	CertAuthority string  `json:"cert_authority"`
	CertNumber    string  `json:"cert_number"`
	Status        int     `json:"status"`
	ReviewAverage float64 `json:"review_average"`
}

// ShopMemberView 店铺成员视图
type ShopMemberView struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
