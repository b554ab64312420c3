package authz

import "testing"

var allProductStatuses = []string{
	ProductDraft, ProductPendingReview, ProductActive,
	ProductInactive, ProductDiscontinued,
}

// ==================== 停售终态 ====================

// discontinued 不可恢复：只能新建商品，这是刻意的业务规则
func TestProductTransition_DiscontinuedTerminal(t *testing.T) {
	for _, to := range allProductStatuses {
		if CanTransitionProduct(ProductDiscontinued, to) {
			t.Errorf("discontinued 不应有出边 -> %s", to)
		}
	}
	for _, action := range allActions {
		if action == ActionView {
			continue
		}
		if ActionAllowedInStatus(ProductDiscontinued, action) {
			t.Errorf("discontinued 状态不应允许动作 %s", action)
		}
	}
}

// ==================== 生命周期主链 ====================

func TestProductTransition_Lifecycle(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{ProductDraft, ProductPendingReview, true},
		{ProductPendingReview, ProductActive, true},
		{ProductActive, ProductInactive, true},
		{ProductInactive, ProductActive, true},
		{ProductActive, ProductDiscontinued, true},
		{ProductInactive, ProductDiscontinued, true},
		// 不许绕过审核
		{ProductDraft, ProductActive, false},
		{ProductActive, ProductPendingReview, false},
		{ProductInactive, ProductDraft, false},
	}
	for _, c := range cases {
		if got := CanTransitionProduct(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionProduct(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

// ==================== 状态内动作 ====================

func TestProductActionAllowedInStatus(t *testing.T) {
	cases := []struct {
		status string
		action Action
		want   bool
	}{
		// approve 只在 pending_review 有意义
		{ProductPendingReview, ActionApprove, true},
		{ProductDraft, ActionApprove, false},
		{ProductActive, ActionApprove, false},
		{ProductInactive, ActionApprove, false},
		// feature 只对在售商品有意义
		{ProductActive, ActionFeature, true},
		{ProductInactive, ActionFeature, false},
		// 在售商品不可直接删除，先下架
		{ProductActive, ActionDelete, false},
		{ProductInactive, ActionDelete, true},
		{ProductDraft, ActionDelete, true},
		// 未知状态一律拒绝
		{"out_of_stock", ActionUpdate, false},
		{"", ActionView, false},
	}
	for _, c := range cases {
		if got := ActionAllowedInStatus(c.status, c.action); got != c.want {
			t.Errorf("ActionAllowedInStatus(%s, %s) = %v, want %v", c.status, c.action, got, c.want)
		}
	}
}
