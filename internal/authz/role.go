package authz

import "fmt"

// ==================== 全局角色 ====================

// GlobalRole 全局角色，权限矩阵的主轴
// 封闭枚举：新增角色必须同步更新权限矩阵，否则默认无任何权限
type GlobalRole string

const (
	RolePlatformAdmin GlobalRole = "platform_admin" // 平台管理员
	RoleModerator     GlobalRole = "moderator"      // 平台审核员
	RoleShopOwner     GlobalRole = "shop_owner"     // 店主
	RoleShopAdmin     GlobalRole = "shop_admin"     // 店铺管理员
	RoleShopStaff     GlobalRole = "shop_staff"     // 店铺员工
	RoleCustomer      GlobalRole = "customer"       // 普通买家
)

// IsPlatform 是否平台级角色（平台级角色不关联任何店铺）
func (r GlobalRole) IsPlatform() bool {
	return r == RolePlatformAdmin || r == RoleModerator
}

// IsShopScoped 是否店铺级角色（店铺级角色必须携带店铺归属）
func (r GlobalRole) IsShopScoped() bool {
	return r == RoleShopOwner || r == RoleShopAdmin || r == RoleShopStaff
}

// ==================== 店铺内角色 ====================

// ShopRole 店铺内角色，仅对店铺级身份有意义
type ShopRole string

const (
	ShopRoleStaff ShopRole = "staff" // 员工
	ShopRoleAdmin ShopRole = "admin" // 管理员
	ShopRoleOwner ShopRole = "owner" // 所有者
)

// 店铺内角色等级: staff(1) < admin(2) < owner(3)
var shopRoleRanks = map[ShopRole]int{
	ShopRoleStaff: 1,
	ShopRoleAdmin: 2,
	ShopRoleOwner: 3,
}

// Rank 返回店铺内角色等级
// 传入未定义角色属于调用方违反约定，直接 panic，外层 Facade 负责先收窄身份
func (r ShopRole) Rank() int {
	rank, ok := shopRoleRanks[r]
	if !ok {
		panic(fmt.Sprintf("authz: 未定义的店铺角色 %q", r))
	}
	return rank
}

// AtLeast 判断当前角色是否不低于要求的最低角色
func (r ShopRole) AtLeast(required ShopRole) bool {
	return r.Rank() >= required.Rank()
}
