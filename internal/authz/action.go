package authz

// ==================== 资源类型 ====================

// ResourceType 受权限矩阵保护的资源类型
type ResourceType string

const (
	ResourceProduct ResourceType = "product" // 商品
	ResourceOrder   ResourceType = "order"   // 订单
	ResourceShop    ResourceType = "shop"    // 店铺
)

// ==================== 动作 ====================

// Action 可被授权的动作
type Action string

const (
	ActionView          Action = "view"           // 查看
	ActionCreate        Action = "create"         // 创建
	ActionUpdate        Action = "update"         // 修改
	ActionDelete        Action = "delete"         // 删除
	ActionChangeStatus  Action = "change_status"  // 状态流转
	ActionApprove       Action = "approve"        // 审核通过
	ActionFeature       Action = "feature"        // 设为推荐
	ActionModerate      Action = "moderate"       // 平台审查
	ActionManageMembers Action = "manage_members" // 成员管理
	ActionCancel        Action = "cancel"         // 取消订单
	ActionRefund        Action = "refund"         // 退款
)
