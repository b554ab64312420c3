package authz

// ==================== 授权门面 ====================

// Authorizer 授权门面，把矩阵、归属、状态机组合成各业务场景的守卫谓词
// 每个守卫按固定顺序短路求值：
//   平台绕过 → 矩阵角色检查 → 租户/归属检查 → 状态流转检查（仅状态类守卫）
// 顺序不可调换：归属检查一定在角色检查之后，角色无资格时不触碰资源归属，
// 避免通过错误形状或时序向无权角色泄露资源是否存在
type Authorizer struct {
	matrix *Matrix
}

// NewAuthorizer 创建授权门面，矩阵构建后只读
func NewAuthorizer(matrix *Matrix) *Authorizer {
	return &Authorizer{matrix: matrix}
}

// platformBypass 平台级身份的统一绕过规则
// 整个核心只有这一处绕过逻辑：平台级角色跳过归属检查，但必须先过矩阵，
// 管理员的权限同样是矩阵逐条枚举出来的，没有隐式的全权
// 第二个返回值表示是否已由绕过规则定论
func (a *Authorizer) platformBypass(id Identity, rt ResourceType, action Action) (Decision, bool) {
	if !id.Role.IsPlatform() {
		return Decision{}, false
	}
	if a.matrix.IsAllowed(id.Role, rt, action) {
		return Allow(), true
	}
	return Deny(DenyInsufficientRole), true
}

// tenancy 租户/归属检查，矩阵通过之后执行
// 买家走用户归属轴，店铺级角色走店铺归属轴
func tenancy(id Identity, res Resource) Decision {
	if id.Role == RoleCustomer {
		if !OwnsResource(id, res, OwnerAxisUser) {
			return Deny(DenyNotOwner)
		}
		return Allow()
	}
	if d := ShopAffiliated(id, ShopRoleStaff, 0); !d.Allowed {
		return d
	}
	if !OwnsResource(id, res, OwnerAxisShop) {
		return Deny(DenyWrongShop)
	}
	return Allow()
}

// ==================== 守卫谓词 ====================

// CanManageOwnShop 店铺管理守卫（改店铺资料等）
// requestedShopID: 请求里显式点名的店铺，为 0 表示未点名
// 店铺级身份要求店铺内角色至少 admin，staff 无店铺管理权
func (a *Authorizer) CanManageOwnShop(id Identity, shop Resource, requestedShopID int64) Decision {
	if shop.ID == 0 {
		return Deny(DenyResourceNotFound)
	}
	if d, handled := a.platformBypass(id, ResourceShop, ActionUpdate); handled {
		return d
	}
	if !a.matrix.IsAllowed(id.Role, ResourceShop, ActionUpdate) {
		return Deny(DenyInsufficientRole)
	}
	if d := ShopAffiliated(id, ShopRoleAdmin, requestedShopID); !d.Allowed {
		return d
	}
	if !OwnsResource(id, shop, OwnerAxisShop) {
		return Deny(DenyWrongShop)
	}
	return Allow()
}

// CanModerateAnyShop 平台审查守卫，不依赖具体资源实例
func (a *Authorizer) CanModerateAnyShop(id Identity) Decision {
	if !a.matrix.IsAllowed(id.Role, ResourceShop, ActionModerate) {
		return Deny(DenyInsufficientRole)
	}
	return Allow()
}

// CanCreateResource 创建类守卫
// create 不针对已有实例，没有归属可查：矩阵过关后，店铺级身份校验
// 店铺归属与点名店铺，买家与平台角色只看矩阵
func (a *Authorizer) CanCreateResource(id Identity, rt ResourceType, requestedShopID int64) Decision {
	if d, handled := a.platformBypass(id, rt, ActionCreate); handled {
		return d
	}
	if !a.matrix.IsAllowed(id.Role, rt, ActionCreate) {
		return Deny(DenyInsufficientRole)
	}
	if id.Role.IsShopScoped() {
		return ShopAffiliated(id, ShopRoleStaff, requestedShopID)
	}
	return Allow()
}

// CanModifyOwnedResource 归属资源的修改类守卫（update / delete / feature 等）
func (a *Authorizer) CanModifyOwnedResource(id Identity, res Resource, action Action) Decision {
	if res.ID == 0 {
		return Deny(DenyResourceNotFound)
	}
	if d, handled := a.platformBypass(id, res.Type, action); handled {
		return d
	}
	if !a.matrix.IsAllowed(id.Role, res.Type, action) {
		return Deny(DenyInsufficientRole)
	}
	return tenancy(id, res)
}

// CanViewOrder 订单查看守卫
// 买家看自己的订单，店铺成员看本店订单，平台级角色按矩阵放行
func (a *Authorizer) CanViewOrder(id Identity, order Resource) Decision {
	if order.ID == 0 {
		return Deny(DenyResourceNotFound)
	}
	if d, handled := a.platformBypass(id, ResourceOrder, ActionView); handled {
		return d
	}
	if !a.matrix.IsAllowed(id.Role, ResourceOrder, ActionView) {
		return Deny(DenyInsufficientRole)
	}
	return tenancy(id, order)
}

// orderStatusAction 目标状态对应的矩阵动作
// 取消和退款是独立的动作位，普通推进走 change_status
func orderStatusAction(to string) Action {
	switch to {
	case OrderCancelled:
		return ActionCancel
	case OrderRefunded:
		return ActionRefund
	default:
		return ActionChangeStatus
	}
}

// CanChangeOrderStatus 订单状态流转守卫
// hasTracking: 是否已录入物流单号，shipped → delivered 的前置条件
// 平台绕过只跳过归属检查，状态机对所有角色一视同仁
func (a *Authorizer) CanChangeOrderStatus(id Identity, order Resource, to string, hasTracking bool) Decision {
	if order.ID == 0 {
		return Deny(DenyResourceNotFound)
	}
	action := orderStatusAction(to)
	if d, handled := a.platformBypass(id, ResourceOrder, action); handled {
		if !d.Allowed {
			return d
		}
		return ValidateOrderTransition(order.Status, to, hasTracking)
	}
	if !a.matrix.IsAllowed(id.Role, ResourceOrder, action) {
		return Deny(DenyInsufficientRole)
	}
	if d := tenancy(id, order); !d.Allowed {
		return d
	}
	return ValidateOrderTransition(order.Status, to, hasTracking)
}

// productStatusAction 商品目标状态对应的矩阵动作
// 审核通过是独立的 approve 动作位；只有 inactive → active 算重新上架，
// 其余指向 active 的请求一律视为审核意图，交给状态检查裁决
func productStatusAction(from, to string) Action {
	if to == ProductActive && from != ProductInactive {
		return ActionApprove
	}
	return ActionChangeStatus
}

// validateProductTransition 商品状态检查：动作在当前状态下有意义 + 流转边合法
func validateProductTransition(from, to string, action Action) Decision {
	if !ActionAllowedInStatus(from, action) {
		return DenyTransition(from, to)
	}
	if !CanTransitionProduct(from, to) {
		return DenyTransition(from, to)
	}
	return Allow()
}

// CanChangeProductStatus 商品状态流转守卫
func (a *Authorizer) CanChangeProductStatus(id Identity, product Resource, to string) Decision {
	if product.ID == 0 {
		return Deny(DenyResourceNotFound)
	}
	action := productStatusAction(product.Status, to)
	if d, handled := a.platformBypass(id, ResourceProduct, action); handled {
		if !d.Allowed {
			return d
		}
		return validateProductTransition(product.Status, to, action)
	}
	if !a.matrix.IsAllowed(id.Role, ResourceProduct, action) {
		return Deny(DenyInsufficientRole)
	}
	if d := tenancy(id, product); !d.Allowed {
		return d
	}
	return validateProductTransition(product.Status, to, action)
}
