package authz

import "testing"

// ==================== 归属判定 ====================

func TestOwnsResource(t *testing.T) {
	buyer := Identity{UserID: 7, Role: RoleCustomer}
	seller := Identity{UserID: 3, Role: RoleShopAdmin, ShopID: 100, ShopRole: ShopRoleAdmin}
	order := Resource{Type: ResourceOrder, ID: 1, OwnerUserID: 7, ShopID: 100}

	// 同一张订单，两条归属轴相互独立
	if !OwnsResource(buyer, order, OwnerAxisUser) {
		t.Error("买家应命中用户归属轴")
	}
	if OwnsResource(buyer, order, OwnerAxisShop) {
		t.Error("买家无店铺，不应命中店铺归属轴")
	}
	if !OwnsResource(seller, order, OwnerAxisShop) {
		t.Error("店铺成员应命中店铺归属轴")
	}
	if OwnsResource(seller, order, OwnerAxisUser) {
		t.Error("店铺成员不是买家，不应命中用户归属轴")
	}

	// Shop 资源以自身 ID 为租户标识
	shop := Resource{Type: ResourceShop, ID: 100}
	if !OwnsResource(seller, shop, OwnerAxisShop) {
		t.Error("店铺成员应命中本店")
	}
	if OwnsResource(seller, Resource{Type: ResourceShop, ID: 200}, OwnerAxisShop) {
		t.Error("他店不应命中")
	}
}

// ==================== 店铺归属守卫 ====================

func TestShopAffiliated(t *testing.T) {
	staff := Identity{UserID: 3, Role: RoleShopStaff, ShopID: 100, ShopRole: ShopRoleStaff}
	admin := Identity{UserID: 4, Role: RoleShopAdmin, ShopID: 100, ShopRole: ShopRoleAdmin}
	owner := Identity{UserID: 7, Role: RoleShopOwner, ShopID: 100, ShopRole: ShopRoleOwner}

	if d := ShopAffiliated(admin, ShopRoleAdmin, 0); !d.Allowed {
		t.Errorf("admin 应通过 min=admin: %+v", d)
	}
	if d := ShopAffiliated(staff, ShopRoleAdmin, 0); d.Allowed || d.Reason != DenyInsufficientRole {
		t.Errorf("staff 不足 min=admin 应拒绝: %+v", d)
	}
	// 比较按 staff < admin < owner 排序，高阶角色覆盖低阶门槛
	if d := ShopAffiliated(owner, ShopRoleAdmin, 0); !d.Allowed {
		t.Errorf("owner 应通过 min=admin: %+v", d)
	}
	if d := ShopAffiliated(admin, ShopRoleOwner, 0); d.Allowed || d.Reason != DenyInsufficientRole {
		t.Errorf("admin 不足 min=owner 应拒绝: %+v", d)
	}
	if d := ShopAffiliated(staff, ShopRoleStaff, 0); !d.Allowed {
		t.Errorf("staff 应通过 min=staff: %+v", d)
	}

	// 请求点名他店：无论资源层检查如何，一律拒绝
	if d := ShopAffiliated(admin, ShopRoleAdmin, 200); d.Allowed || d.Reason != DenyWrongShop {
		t.Errorf("点名他店应拒绝 WrongShop: %+v", d)
	}
	if d := ShopAffiliated(admin, ShopRoleAdmin, 100); !d.Allowed {
		t.Errorf("点名本店应通过: %+v", d)
	}

	// 店铺级角色却缺少店铺归属：身份不完整，与"店铺不匹配"区分上报
	broken := Identity{UserID: 5, Role: RoleShopAdmin}
	if d := ShopAffiliated(broken, ShopRoleAdmin, 0); d.Allowed || d.Reason != DenyNoShopAffiliation {
		t.Errorf("缺少店铺归属应拒绝 NoShopAffiliation: %+v", d)
	}

	// 非店铺级角色直接拒绝
	customer := Identity{UserID: 6, Role: RoleCustomer}
	if d := ShopAffiliated(customer, ShopRoleStaff, 0); d.Allowed || d.Reason != DenyInsufficientRole {
		t.Errorf("customer 不应通过店铺归属守卫: %+v", d)
	}
}

// ==================== 错误映射 ====================

func TestDecision_Err(t *testing.T) {
	if err := Allow().Err(); err != nil {
		t.Errorf("放行应返回 nil, got %v", err)
	}
	if err := Deny(DenyResourceNotFound).Err(); err != ErrResourceNotFound {
		t.Errorf("want ErrResourceNotFound, got %v", err)
	}
	// 角色类与归属类拒绝对外形状一致，防止探测
	for _, reason := range []DenyReason{DenyInsufficientRole, DenyNotOwner, DenyWrongShop, DenyNoShopAffiliation} {
		if err := Deny(reason).Err(); err != ErrForbidden {
			t.Errorf("%s 应映射为 ErrForbidden, got %v", reason, err)
		}
	}
	err := DenyTransition("shipped", "cancelled").Err()
	te, ok := err.(*TransitionError)
	if !ok || te.From != "shipped" || te.To != "cancelled" {
		t.Errorf("流转拒绝应携带具体状态: %v", err)
	}
}
