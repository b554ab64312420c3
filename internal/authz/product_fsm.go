package authz

// ==================== 商品状态机 ====================

// 商品生命周期状态，与 model 中的常量取值一致
// out_of_stock 不是独立状态：它是 active + 零库存 的派生视图，
// 由库存任务自动维护，不经过本校验器
const (
	ProductDraft         = "draft"
	ProductPendingReview = "pending_review"
	ProductActive        = "active"
	ProductInactive      = "inactive"
	ProductDiscontinued  = "discontinued"
)

// 商品合法流转边集合
// draft → pending_review（提交审核）→ active（审核通过），active ⇄ inactive，
// 任意非终态 → discontinued；discontinued 是终态，停售商品不可恢复，
// 只能新建商品，这是刻意的业务规则
var productTransitions = map[transition]bool{
	{ProductDraft, ProductPendingReview}:  true,
	{ProductPendingReview, ProductActive}: true,
	{ProductActive, ProductInactive}:      true,
	{ProductInactive, ProductActive}:      true,

	{ProductDraft, ProductDiscontinued}:         true,
	{ProductPendingReview, ProductDiscontinued}: true,
	{ProductActive, ProductDiscontinued}:        true,
	{ProductInactive, ProductDiscontinued}:      true,
}

// CanTransitionProduct 商品状态流转是否合法
func CanTransitionProduct(from, to string) bool {
	return productTransitions[transition{from, to}]
}

// 各状态下有意义的动作集合
// approve 只在 pending_review 有意义；feature 只对在售商品有意义；
// discontinued 没有任何动作
var productStatusActions = map[string]map[Action]bool{
	ProductDraft: {
		ActionView:         true,
		ActionUpdate:       true,
		ActionDelete:       true,
		ActionChangeStatus: true,
	},
	ProductPendingReview: {
		ActionView:         true,
		ActionUpdate:       true,
		ActionDelete:       true,
		ActionApprove:      true,
		ActionModerate:     true,
		ActionChangeStatus: true,
	},
	ProductActive: {
		ActionView:         true,
		ActionUpdate:       true,
		ActionFeature:      true,
		ActionModerate:     true,
		ActionChangeStatus: true,
	},
	ProductInactive: {
		ActionView:         true,
		ActionUpdate:       true,
		ActionDelete:       true,
		ActionModerate:     true,
		ActionChangeStatus: true,
	},
	ProductDiscontinued: {
		ActionView: true,
	},
}

// ActionAllowedInStatus 某动作在商品当前状态下是否有意义
// 未知状态一律拒绝
func ActionAllowedInStatus(status string, action Action) bool {
	actions, ok := productStatusActions[status]
	if !ok {
		return false
	}
	return actions[action]
}
