package authz

// ==================== 请求身份 ====================

// Identity 当前请求的已认证身份，来自 JWT 中间件
// 在一次请求的生命周期内不可变，授权核心只读不写
// 约定：ShopID 与 ShopRole 要么同时有值（店铺级角色），要么同时为零值
type Identity struct {
	UserID int64
	Role   GlobalRole

	// 店铺归属，仅店铺级角色携带
	ShopID   int64
	ShopRole ShopRole
}

// HasShop 是否携带店铺归属
func (id Identity) HasShop() bool {
	return id.ShopID != 0
}

// ==================== 资源视图 ====================

// Resource 授权校验所需的资源快照
// service 层取库后转换，核心不关心具体 model 结构
// Product/Order 的 ShopID 标识归属店铺；Order 的 OwnerUserID 标识买家，
// 两条归属轴相互独立；Shop 资源本身以 ID 为租户标识
type Resource struct {
	Type        ResourceType
	ID          int64
	OwnerUserID int64
	ShopID      int64
	Status      string
}

// tenantShopID 资源的店铺租户标识
func (r Resource) tenantShopID() int64 {
	if r.Type == ResourceShop {
		return r.ID
	}
	return r.ShopID
}

// ==================== 归属轴 ====================

// OwnerAxis 归属校验走哪条轴
type OwnerAxis int

const (
	OwnerAxisShop OwnerAxis = iota // 店铺归属轴 (identity.ShopID vs resource.ShopID)
	OwnerAxisUser                  // 用户归属轴 (identity.UserID vs resource.OwnerUserID)
)

// OwnsResource 归属判定
// 纯比较，不解释角色；角色是否有资格走到这一步由 Facade 先行把关
func OwnsResource(id Identity, res Resource, axis OwnerAxis) bool {
	switch axis {
	case OwnerAxisUser:
		return id.UserID != 0 && id.UserID == res.OwnerUserID
	default:
		return id.ShopID != 0 && id.ShopID == res.tenantShopID()
	}
}

// ShopAffiliated 店铺归属守卫
// 校验两件事：店铺内角色至少达到 min（按 staff < admin < owner 比较）；
// 请求里显式点名的店铺（为 0 表示未点名）必须等于身份自己的店铺。
// 点名店铺与资源所属店铺是两道独立的检查，
// 只查其中一道会留下"请求范围 vs 实际资源范围"的缝隙
func ShopAffiliated(id Identity, min ShopRole, requestedShopID int64) Decision {
	if !id.Role.IsShopScoped() {
		return Deny(DenyInsufficientRole)
	}
	// 店铺级角色却没有店铺归属，属于身份数据不完整，与"店铺不匹配"区分上报
	if !id.HasShop() {
		return Deny(DenyNoShopAffiliation)
	}
	if !id.ShopRole.AtLeast(min) {
		return Deny(DenyInsufficientRole)
	}
	if requestedShopID != 0 && requestedShopID != id.ShopID {
		return Deny(DenyWrongShop)
	}
	return Allow()
}
