package authz

// ==================== 订单状态机 ====================

// 订单状态，与 model 中的常量取值一致
// 在本包内重复声明，保持授权核心对 model 包零依赖
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

type transition struct {
	from string
	to   string
}

// 订单合法流转边集合
// 主链 pending → confirmed → processing → shipped → delivered，禁止跳级；
// 取消只在发货前（pending/confirmed/processing）合法，发货后只能走退款；
// delivered / cancelled / refunded 是终态，没有任何出边
var orderTransitions = map[transition]bool{
	{OrderPending, OrderConfirmed}:    true,
	{OrderConfirmed, OrderProcessing}: true,
	{OrderProcessing, OrderShipped}:   true,
	{OrderShipped, OrderDelivered}:    true,

	{OrderPending, OrderCancelled}:    true,
	{OrderConfirmed, OrderCancelled}:  true,
	{OrderProcessing, OrderCancelled}: true,

	{OrderPending, OrderRefunded}:    true,
	{OrderConfirmed, OrderRefunded}:  true,
	{OrderProcessing, OrderRefunded}: true,
	{OrderShipped, OrderRefunded}:    true,
}

// CanTransitionOrder 订单状态流转是否合法（孤立判断，不含前置条件）
func CanTransitionOrder(from, to string) bool {
	return orderTransitions[transition{from, to}]
}

// ValidateOrderTransition 校验订单状态流转
// hasTracking: shipped → delivered 要求已录入物流单号，这是随流转请求
// 一起携带的前置条件，不编码在状态本身
func ValidateOrderTransition(from, to string, hasTracking bool) Decision {
	if !CanTransitionOrder(from, to) {
		return DenyTransition(from, to)
	}
	if from == OrderShipped && to == OrderDelivered && !hasTracking {
		return DenyTransition(from, to)
	}
	return Allow()
}
