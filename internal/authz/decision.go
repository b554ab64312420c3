package authz

import (
	"errors"
	"fmt"
)

// ==================== 拒绝原因 ====================

// DenyReason 拒绝原因标签
// 内部区分所有原因方便测试与日志；对外渲染时 InsufficientRole /
// NotOwner / WrongShop / NoShopAffiliation 统一为同一种 403 形状，
// 避免调用方通过响应差异枚举角色或探测租户归属
type DenyReason string

const (
	DenyInsufficientRole  DenyReason = "insufficient_role"   // 角色不在矩阵中
	DenyNotOwner          DenyReason = "not_owner"           // 非资源归属人
	DenyWrongShop         DenyReason = "wrong_shop"          // 店铺不匹配
	DenyNoShopAffiliation DenyReason = "no_shop_affiliation" // 店铺级角色缺少店铺归属
	DenyInvalidTransition DenyReason = "invalid_transition"  // 非法状态流转
	DenyResourceNotFound  DenyReason = "resource_not_found"  // 资源不存在
)

// ==================== 判定结果 ====================

// Decision 授权判定结果
// 核心内所有守卫都返回 Decision 值，授权失败不抛错
type Decision struct {
	Allowed bool
	Reason  DenyReason

	// 仅 DenyInvalidTransition 时有值
	From string
	To   string
}

// Allow 放行
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny 按原因拒绝
func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// DenyTransition 状态流转拒绝，携带当前/目标状态
func DenyTransition(from, to string) Decision {
	return Decision{Reason: DenyInvalidTransition, From: from, To: to}
}

// ==================== 错误映射 ====================

// 哨兵错误，供 service/controller 层用 errors.Is / errors.As 判别
var (
	// ErrForbidden 对外统一的权限拒绝，不透露具体原因
	ErrForbidden = errors.New("无权限访问")
	// ErrResourceNotFound 资源不存在，先于归属校验返回
	ErrResourceNotFound = errors.New("资源不存在")
)

// TransitionError 非法状态流转
// 属于正常的业务状态冲突而非安全边界，对外携带具体状态方便前端刷新视图
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("非法状态流转: %s -> %s", e.From, e.To)
}

// Err 把判定结果转成错误
// 放行返回 nil；归属类/角色类拒绝统一映射为 ErrForbidden
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyResourceNotFound:
		return ErrResourceNotFound
	case DenyInvalidTransition:
		return &TransitionError{From: d.From, To: d.To}
	default:
		return ErrForbidden
	}
}
