package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/authz"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/repository"
)

var (
	ErrProductNotSellable = errors.New("商品不在售")
	ErrInsufficientStock  = errors.New("库存不足")
	ErrCrossShopOrder     = errors.New("一张订单只能包含同一店铺的商品")
	ErrTrackingWindow     = errors.New("当前状态不可录入物流单号")
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
type OrderService struct {
	uow  *repository.OrderUnitOfWork
	auth *authz.Authorizer
}

// NewOrderService 创建订单服务
func NewOrderService(uow *repository.OrderUnitOfWork, auth *authz.Authorizer) *OrderService {
	return &OrderService{uow: uow, auth: auth}
}

// orderResource 订单转授权资源快照
func orderResource(o *model.Order) authz.Resource {
	if o == nil {
		return authz.Resource{Type: authz.ResourceOrder}
	}
	return authz.Resource{
		Type:        authz.ResourceOrder,
		ID:          o.ID,
		OwnerUserID: o.BuyerUserID,
		ShopID:      o.ShopID,
		Status:      o.Status,
	}
}

// toOrderView 订单转视图
func toOrderView(o *model.Order) *dto.OrderView {
	view := &dto.OrderView{
		ID:               o.ID,
		OrderNo:          o.OrderNo,
		ShopID:           o.ShopID,
		BuyerUserID:      o.BuyerUserID,
		Status:           o.Status,
		GrandTotalAmount: o.GrandTotalAmount,
		Currency:         o.Currency,
		TrackingNumber:   o.TrackingNumber,
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, dto.OrderItemView{
			ProductID:   item.ProductID,
			Title:       item.Title,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			PriceAmount: item.PriceAmount,
			CertNumber:  item.CertNumber,
		})
	}
	return view
}

// newOrderNo 生成对外订单号
func newOrderNo() string {
	return fmt.Sprintf("CM%s%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}

// ==================== 下单 ====================

// PlaceOrder 买家下单
// 商品校验：同店、在售、库存充足；认证编号随订单项快照留存
func (s *OrderService) PlaceOrder(ctx context.Context, id authz.Identity, req *dto.PlaceOrderRequest) (*dto.OrderView, error) {
	if d := s.auth.CanCreateResource(id, authz.ResourceOrder, 0); !d.Allowed {
		return nil, d.Err()
	}

	order := &model.Order{
		OrderNo:         newOrderNo(),
		ShopID:          req.ShopID,
		BuyerUserID:     id.UserID,
		Status:          model.OrderStatusPending,
		ShippingAddress: datatypes.JSONMap(req.ShippingAddress),
	}

	// 先做只读校验并构造订单项，库存变更留到事务里
	var subtotal int64
	for _, line := range req.Items {
		product, err := s.uow.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, authz.ErrResourceNotFound
		}
		if product.ShopID != req.ShopID {
			return nil, ErrCrossShopOrder
		}
		if product.Status != model.ProductStatusActive {
			return nil, ErrProductNotSellable
		}
		if product.Quantity < line.Quantity {
			return nil, ErrInsufficientStock
		}

		order.Items = append(order.Items, model.OrderItem{
			ProductID:   product.ID,
			Title:       product.Title,
			SKU:         product.LocalSKU,
			Quantity:    line.Quantity,
			PriceAmount: product.PriceAmount,
			Currency:    product.CurrencyCode,
			CertNumber:  product.CertNumber,
		})
		subtotal += product.PriceAmount * int64(line.Quantity)
		if order.Currency == "" {
			order.Currency = product.CurrencyCode
		}
	}

	order.SubtotalAmount = subtotal
	order.GrandTotalAmount = subtotal + order.ShippingAmount + order.TaxAmount

	// 扣库存与落订单在同一事务：任一订单项扣减失败，前面已扣的库存随事务回滚
	// 扣减带 quantity >= ? 条件，预检通过后被并发请求抢光的情况在这里兜住
	err := s.uow.Transaction(ctx, func(txUow *repository.OrderUnitOfWork) error {
		for _, item := range order.Items {
			rows, err := txUow.Products.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrInsufficientStock
			}
		}
		return txUow.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderView(order), nil
}

// ==================== 查询 ====================

// GetOrder 查订单
func (s *OrderService) GetOrder(ctx context.Context, id authz.Identity, orderID int64) (*dto.OrderView, error) {
	order, err := s.uow.Orders.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if d := s.auth.CanViewOrder(id, orderResource(order)); !d.Allowed {
		return nil, d.Err()
	}
	return toOrderView(order), nil
}

// ListOrders 订单列表
// 买家只看自己的单；店铺级身份点名店铺时交叉校验后强制收敛到本店
func (s *OrderService) ListOrders(ctx context.Context, id authz.Identity, filter repository.OrderFilter) ([]dto.OrderView, int64, error) {
	switch {
	case id.Role == authz.RoleCustomer:
		filter.BuyerUserID = id.UserID
		filter.ShopID = 0
	case id.Role.IsShopScoped():
		if d := authz.ShopAffiliated(id, authz.ShopRoleStaff, filter.ShopID); !d.Allowed {
			return nil, 0, d.Err()
		}
		filter.ShopID = id.ShopID
	}

	orders, total, err := s.uow.Orders.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]dto.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *toOrderView(&orders[i]))
	}
	return views, total, nil
}

// ==================== 状态流转 ====================

// ChangeStatus 订单状态流转
// 守卫回答"这次流转孤立看是否合法"；真正的防丢失更新由 CAS 落库裁决，
// 两个并发请求读到同一状态时只有一个能生效
func (s *OrderService) ChangeStatus(ctx context.Context, id authz.Identity, orderID int64, next string) error {
	order, err := s.uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	hasTracking := order != nil && order.HasTracking()
	if d := s.auth.CanChangeOrderStatus(id, orderResource(order), next, hasTracking); !d.Allowed {
		return d.Err()
	}

	if err := s.uow.Orders.UpdateStatusCAS(ctx, orderID, order.Status, next); err != nil {
		return err
	}

	// 补记流转时间戳
	now := time.Now()
	fields := map[string]interface{}{}
	switch next {
	case model.OrderStatusShipped:
		fields["shipped_at"] = now
	case model.OrderStatusDelivered:
		fields["delivered_at"] = now
	case model.OrderStatusCancelled:
		fields["cancelled_at"] = now
	case model.OrderStatusRefunded:
		fields["refunded_at"] = now
	}
	if len(fields) > 0 {
		return s.uow.Orders.UpdateFields(ctx, orderID, fields)
	}
	return nil
}

// AttachTracking 录入物流单号
// 只在 processing / shipped 状态接受，shipped -> delivered 依赖这里的单号
func (s *OrderService) AttachTracking(ctx context.Context, id authz.Identity, orderID int64, req *dto.AttachTrackingRequest) error {
	order, err := s.uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if d := s.auth.CanModifyOwnedResource(id, orderResource(order), authz.ActionUpdate); !d.Allowed {
		return d.Err()
	}
	if order.Status != model.OrderStatusProcessing && order.Status != model.OrderStatusShipped {
		return ErrTrackingWindow
	}

	return s.uow.Orders.UpdateFields(ctx, orderID, map[string]interface{}{
		"carrier_code":    req.CarrierCode,
		"tracking_number": req.TrackingNumber,
	})
}

// ConfirmDelivery 物流轮询任务确认签收
// 自动化动作没有请求身份，但流转仍必须过状态机与 CAS
func (s *OrderService) ConfirmDelivery(ctx context.Context, orderID int64) error {
	order, err := s.uow.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return authz.ErrResourceNotFound
	}

	if d := authz.ValidateOrderTransition(order.Status, model.OrderStatusDelivered, order.HasTracking()); !d.Allowed {
		return d.Err()
	}

	if err := s.uow.Orders.UpdateStatusCAS(ctx, orderID, order.Status, model.OrderStatusDelivered); err != nil {
		return err
	}
	return s.uow.Orders.UpdateFields(ctx, orderID, map[string]interface{}{"delivered_at": time.Now()})
}
