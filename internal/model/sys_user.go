package model

import "time"

// ==================== 全局角色常量 ====================

// 全局角色：平台级 + 店铺级 + 普通买家
// 注意区分：这是系统全局的角色，ShopMember 里的是店铺内的角色
const (
	RolePlatformAdmin = "platform_admin" // 平台管理员
	RoleModerator     = "moderator"      // 平台审核员
	RoleShopOwner     = "shop_owner"     // 店主
	RoleShopAdmin     = "shop_admin"     // 店铺管理员
	RoleShopStaff     = "shop_staff"     // 店铺员工
	RoleCustomer      = "customer"       // 普通买家
)

// 用户状态常量
const (
	UserStatusActive   = 1 // 正常
	UserStatusDisabled = 0 // 已禁用
)

// ==================== SysUser 系统用户 ====================

// SysUser 系统用户（买家、店铺成员、平台人员共用一张表，用 Role 区分）
type SysUser struct {
	BaseModel
	AuditMixin

	// 基础信息
	Username string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码
	Email    string `gorm:"size:100;index"`

	// 全局角色，见上方常量
	Role string `gorm:"size:32;index;default:'customer'"`

	Status      int `gorm:"default:1;comment:状态 1-正常 0-禁用"`
	LastLoginAt *time.Time

	// 关联：用户在各店铺的成员关系（店铺级角色在这里）
	Memberships []ShopMember `gorm:"foreignKey:SysUserID"`
}

func (SysUser) TableName() string {
	return "sys_users"
}

// IsActive 用户是否可登录
func (u *SysUser) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsShopScoped 是否店铺级角色（必须携带店铺归属）
func (u *SysUser) IsShopScoped() bool {
	return u.Role == RoleShopOwner || u.Role == RoleShopAdmin || u.Role == RoleShopStaff
}
