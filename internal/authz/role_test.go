package authz

import "testing"

// ==================== 店铺角色等级 ====================

func TestShopRole_Rank(t *testing.T) {
	if ShopRoleStaff.Rank() != 1 || ShopRoleAdmin.Rank() != 2 || ShopRoleOwner.Rank() != 3 {
		t.Fatalf("角色等级错误: staff=%d admin=%d owner=%d",
			ShopRoleStaff.Rank(), ShopRoleAdmin.Rank(), ShopRoleOwner.Rank())
	}
}

func TestShopRole_AtLeast(t *testing.T) {
	cases := []struct {
		actual   ShopRole
		required ShopRole
		want     bool
	}{
		{ShopRoleOwner, ShopRoleStaff, true},
		{ShopRoleOwner, ShopRoleOwner, true},
		{ShopRoleAdmin, ShopRoleAdmin, true},
		{ShopRoleAdmin, ShopRoleOwner, false},
		{ShopRoleStaff, ShopRoleAdmin, false},
		{ShopRoleStaff, ShopRoleStaff, true},
	}
	for _, c := range cases {
		if got := c.actual.AtLeast(c.required); got != c.want {
			t.Errorf("AtLeast(%s, %s) = %v, want %v", c.actual, c.required, got, c.want)
		}
	}
}

// 未定义角色属于调用方违约，应当 panic 而不是静默放行或拒绝
func TestShopRole_RankUndefinedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("未定义角色的 Rank 应当 panic")
		}
	}()
	_ = ShopRole("customer").Rank()
}

func TestGlobalRole_Scope(t *testing.T) {
	for _, r := range []GlobalRole{RolePlatformAdmin, RoleModerator} {
		if !r.IsPlatform() || r.IsShopScoped() {
			t.Errorf("%s 应为平台级角色", r)
		}
	}
	for _, r := range []GlobalRole{RoleShopOwner, RoleShopAdmin, RoleShopStaff} {
		if r.IsPlatform() || !r.IsShopScoped() {
			t.Errorf("%s 应为店铺级角色", r)
		}
	}
	if RoleCustomer.IsPlatform() || RoleCustomer.IsShopScoped() {
		t.Error("customer 既不是平台级也不是店铺级")
	}
}
