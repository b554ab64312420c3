package model

import "time"

// ==================== 店铺状态常量 ====================

const (
	ShopStatusPending   = 0 // 待审核
	ShopStatusActive    = 1 // 正常
	ShopStatusSuspended = 2 // 已停用
)

// ==================== 店铺内角色常量 ====================

// 店铺内角色，仅在 ShopMember 关系上有意义
const (
	ShopRoleOwner = "owner" // 所有者
	ShopRoleAdmin = "admin" // 管理员
	ShopRoleStaff = "staff" // 员工
)

// ==================== Shop 店铺 ====================

type Shop struct {
	BaseModel
	AuditMixin

	// 核心身份
	ShopName string `gorm:"size:100;uniqueIndex;not null"`
	Title    string `gorm:"size:255;comment:店铺标题"`
	// 店铺归属人，店铺资源的所有权主轴
	OwnerUserID int64 `gorm:"index;not null"`

	// 区域认证信息（认证商品交易的核心字段）
	Region        string `gorm:"size:20;not null;comment:所属地区"`
	CertAuthority string `gorm:"size:64;comment:区域认证机构代码"`
	CertNumber    string `gorm:"size:64;index;comment:店铺认证编号"`

	// 运营指标
	ListingActiveCount int     `gorm:"default:0"` // 在售数
	OrderSoldCount     int     `gorm:"default:0"` // 总销量
	ReviewCount        int     `gorm:"default:0"` // 评价数
	ReviewAverage      float64 `gorm:"type:decimal(3,1);default:0"`
	CurrencyCode       string  `gorm:"size:10;default:USD"`

	// 状态
	Status       int        `gorm:"default:0;comment:状态 0-待审核 1-正常 2-已停用"`
	ActivatedAt  *time.Time `gorm:"comment:审核通过时间"`
	SuspendedAt  *time.Time
	Announcement string `gorm:"type:text;comment:店铺公告"`

	// 关联
	Members []ShopMember `gorm:"foreignKey:ShopID"`
}

func (Shop) TableName() string {
	return "shops"
}

// IsActive 店铺是否正常营业
func (s *Shop) IsActive() bool {
	return s.Status == ShopStatusActive
}

// ==================== ShopMember 店铺成员 ====================

// ShopMember 定义用户和店铺的关联关系及店铺内角色
// 联合唯一索引：一个用户在一个店铺里只能有一种角色
type ShopMember struct {
	BaseModel

	SysUserID int64 `gorm:"index;uniqueIndex:idx_user_shop;not null"`
	ShopID    int64 `gorm:"index;uniqueIndex:idx_user_shop;not null"`

	// 角色: owner / admin / staff
	Role string `gorm:"size:20;default:'staff'"`

	// 关联对象 (方便查询)
	SysUser *SysUser `gorm:"foreignKey:SysUserID"`
	Shop    *Shop    `gorm:"foreignKey:ShopID"`
}

func (ShopMember) TableName() string {
	return "shop_members"
}
