package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ==================== 商品状态常量 ====================

// ProductStatus 商品生命周期状态
// out_of_stock 不在这里：它是 active + 零库存 的派生视图，不走状态机
const (
	ProductStatusDraft         = "draft"          // 草稿
	ProductStatusPendingReview = "pending_review" // 待审核
	ProductStatusActive        = "active"         // 在售
	ProductStatusInactive      = "inactive"       // 下架
	ProductStatusDiscontinued  = "discontinued"   // 已停售（终态，不可恢复）
)

// ==================== Product 商品 ====================

type Product struct {
	BaseModel
	AuditMixin

	// 多店铺隔离核心
	ShopID int64 `gorm:"index:idx_shop_status;not null"`
	Shop   *Shop `gorm:"foreignKey:ShopID"`

	// 商品基本信息
	LocalSKU    string `gorm:"size:100;index"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:20;index:idx_shop_status;default:draft"`

	// 区域认证信息
	CertNumber    string `gorm:"size:64;index;comment:商品认证编号"`
	CertAuthority string `gorm:"size:64;comment:认证机构代码"`
	CertExpiresTS int64  `gorm:"default:0;comment:认证到期时间戳"`

	// 价格与库存（分为单位存储）
	PriceAmount  int64  `gorm:"default:0"`
	CurrencyCode string `gorm:"size:10;default:USD"`
	Quantity     int    `gorm:"default:0"`
	// 库存派生标记，由库存任务维护，不属于生命周期状态
	StockOut bool `gorm:"default:false;index"`

	// 数组/标签类数据 (Postgres Array)
	Tags      pq.StringArray `gorm:"type:text[]"`
	Materials pq.StringArray `gorm:"type:text[]"`

	// 扩展属性（PostgreSQL JSONB）
	Attributes datatypes.JSONMap `gorm:"type:jsonb"`

	// 审核信息
	ReviewedBy int64 `gorm:"default:0;comment:审核人 SysUserID"`
	ReviewNote string `gorm:"type:text"`

	// 平台推荐位
	IsFeatured bool       `gorm:"default:false;index"`
	FeaturedAt *time.Time `gorm:"comment:上推荐位时间"`

	// 统计
	Views       int `gorm:"default:0"`
	NumFavorers int `gorm:"default:0"`
}

func (Product) TableName() string {
	return "products"
}

// IsOutOfStock 是否缺货（派生视图：在售且零库存）
func (p *Product) IsOutOfStock() bool {
	return p.Status == ProductStatusActive && p.Quantity <= 0
}

// IsDiscontinued 是否已停售
func (p *Product) IsDiscontinued() bool {
	return p.Status == ProductStatusDiscontinued
}
