package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
const (
	OrderStatusPending    = "pending"    // 待确认
	OrderStatusConfirmed  = "confirmed"  // 已确认
	OrderStatusProcessing = "processing" // 处理中（已打单）
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收（终态）
	OrderStatusCancelled  = "cancelled"  // 已取消（终态）
	OrderStatusRefunded   = "refunded"   // 已退款（终态）
)

// ==================== Order 订单主表 ====================

// Order 订单
// 注意两条独立的归属轴：ShopID 标识卖方店铺，BuyerUserID 标识买家，
// 权限校验时两条都要查，不能互相替代
type Order struct {
	BaseModel

	OrderNo string `gorm:"size:64;uniqueIndex;not null;comment:对外订单号"`
	ShopID  int64  `gorm:"index;not null"`

	// 买家信息
	BuyerUserID int64  `gorm:"index;not null"`
	BuyerEmail  string `gorm:"size:255"`
	BuyerName   string `gorm:"size:255"`

	// 状态
	Status string `gorm:"size:32;index;default:pending"`

	// 收货地址（PostgreSQL JSONB）
	ShippingAddress datatypes.JSONMap `gorm:"type:jsonb"`

	// 金额（分为单位存储）
	SubtotalAmount   int64
	ShippingAmount   int64
	TaxAmount        int64
	GrandTotalAmount int64
	Currency         string `gorm:"size:10;default:USD"`

	// 支付
	IsPaid bool `gorm:"default:false"`
	PaidAt *time.Time

	// 发货
	CarrierCode    string `gorm:"size:32"`
	TrackingNumber string `gorm:"size:64;index"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (*Order) TableName() string {
	return "orders"
}

// GetGrandTotal 获取总金额（元）
func (o *Order) GetGrandTotal() float64 {
	return float64(o.GrandTotalAmount) / 100
}

// HasTracking 是否已录入物流单号（shipped -> delivered 的前置条件）
func (o *Order) HasTracking() bool {
	return o.TrackingNumber != ""
}

// IsTerminal 是否处于终态
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered ||
		o.Status == OrderStatusCancelled ||
		o.Status == OrderStatusRefunded
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项
type OrderItem struct {
	BaseModel

	OrderID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index"`

	Title string `gorm:"size:500"`
	SKU   string `gorm:"size:100;index"`

	Quantity    int `gorm:"default:1"`
	PriceAmount int64
	Currency    string `gorm:"size:10"`

	// 下单时的认证快照，认证过期不影响历史订单
	CertNumber string `gorm:"size:64"`
}

func (*OrderItem) TableName() string {
	return "order_items"
}

// GetTotalPrice 获取总价（元）
func (i *OrderItem) GetTotalPrice() float64 {
	return float64(i.PriceAmount*int64(i.Quantity)) / 100
}
