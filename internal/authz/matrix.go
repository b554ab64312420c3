package authz

// ==================== 权限矩阵 ====================

// Matrix 权限矩阵：角色 × 资源类型 × 动作 → 允许/拒绝
// 进程启动时构建一次，此后只读，可被任意并发请求共享
// 查询是全函数：矩阵里没有的组合一律视为拒绝，不报错
type Matrix struct {
	rules map[GlobalRole]map[ResourceType]map[Action]bool
}

// NewMatrix 从动作列表构建矩阵，入参在构建后不再被引用
func NewMatrix(rules map[GlobalRole]map[ResourceType][]Action) *Matrix {
	m := &Matrix{rules: make(map[GlobalRole]map[ResourceType]map[Action]bool, len(rules))}
	for role, byResource := range rules {
		m.rules[role] = make(map[ResourceType]map[Action]bool, len(byResource))
		for rt, actions := range byResource {
			set := make(map[Action]bool, len(actions))
			for _, action := range actions {
				set[action] = true
			}
			m.rules[role][rt] = set
		}
	}
	return m
}

// IsAllowed 查询角色对某资源类型是否允许某动作
// 角色、资源类型或动作缺席都返回 false：缺席不是歧义，是隐式拒绝
func (m *Matrix) IsAllowed(role GlobalRole, rt ResourceType, action Action) bool {
	byResource, ok := m.rules[role]
	if !ok {
		return false
	}
	actions, ok := byResource[rt]
	if !ok {
		return false
	}
	return actions[action]
}

// ==================== 默认矩阵 ====================

// DefaultMatrix 平台默认权限矩阵
// 注意 platform_admin 的动作也是逐条枚举的，不存在通配绕过：
// 给资源类型新增动作时必须有意识地决定每个角色（包括管理员）是否放行
func DefaultMatrix() *Matrix {
	return NewMatrix(map[GlobalRole]map[ResourceType][]Action{
		RolePlatformAdmin: {
			ResourceProduct: {ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionChangeStatus, ActionApprove, ActionFeature, ActionModerate},
			ResourceOrder:   {ActionView, ActionUpdate, ActionChangeStatus, ActionCancel, ActionRefund},
			ResourceShop:    {ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionManageMembers, ActionModerate},
		},
		RoleModerator: {
			ResourceProduct: {ActionView, ActionApprove, ActionModerate},
			ResourceOrder:   {ActionView},
			ResourceShop:    {ActionView, ActionModerate},
		},
		RoleShopOwner: {
			ResourceProduct: {ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionChangeStatus, ActionFeature},
			ResourceOrder:   {ActionView, ActionUpdate, ActionChangeStatus, ActionCancel, ActionRefund},
			ResourceShop:    {ActionView, ActionUpdate, ActionManageMembers},
		},
		RoleShopAdmin: {
			ResourceProduct: {ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionChangeStatus},
			ResourceOrder:   {ActionView, ActionUpdate, ActionChangeStatus, ActionCancel, ActionRefund},
			ResourceShop:    {ActionView, ActionUpdate},
		},
		RoleShopStaff: {
			ResourceProduct: {ActionView, ActionUpdate},
			ResourceOrder:   {ActionView, ActionChangeStatus},
			ResourceShop:    {ActionView},
		},
		RoleCustomer: {
			ResourceProduct: {ActionView},
			ResourceOrder:   {ActionView, ActionCreate, ActionCancel},
		},
	})
}
