package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"certmart_v1_202608/internal/model"
)

// ErrStatusConflict 状态 CAS 更新失败：读到的状态与库里已不一致
// 两个并发请求同时读到同一状态时，只有一个能落库，另一个得到本错误
var ErrStatusConflict = errors.New("状态已变更，请刷新后重试")

// ==================== 过滤条件 ====================

// OrderFilter 订单过滤条件
type OrderFilter struct {
	ShopID      int64
	BuyerUserID int64
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	Keyword     string
	IsPaid      *bool
	Page        int
	PageSize    int
}

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*model.Order, error)
	GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	Update(ctx context.Context, order *model.Order) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// UpdateStatusCAS 条件状态更新：仅当数据库中的当前状态仍为 from 时落库
	// 授权核心只回答"这次流转孤立看是否合法"，真正的防丢失更新在这里
	UpdateStatusCAS(ctx context.Context, id int64, from, to string) error

	// 统计
	CountByShopAndStatus(ctx context.Context, shopID int64, status string) (int64, error)

	// 物流相关
	GetShippedWithTracking(ctx context.Context, limit int) ([]model.Order, error)
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID 根据 ID 获取订单，不存在时返回 (nil, nil)
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// GetByOrderNo 根据对外订单号获取订单
func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// GetByIDWithItems 获取订单及订单项
func (r *orderRepository) GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// List 分页查询订单
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.ShopID > 0 {
		db = db.Where("shop_id = ?", filter.ShopID)
	}
	if filter.BuyerUserID > 0 {
		db = db.Where("buyer_user_id = ?", filter.BuyerUserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", filter.EndDate)
	}
	if filter.IsPaid != nil {
		db = db.Where("is_paid = ?", *filter.IsPaid)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		db = db.Where("order_no LIKE ? OR buyer_name LIKE ? OR buyer_email LIKE ?", keyword, keyword, keyword)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	err := db.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// UpdateFields 更新指定字段
func (r *orderRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// UpdateStatusCAS 条件状态更新
// UPDATE orders SET status = to WHERE id = ? AND status = from
// 影响行数为 0 说明另一个请求已抢先流转，返回 ErrStatusConflict
func (r *orderRepository) UpdateStatusCAS(ctx context.Context, id int64, from, to string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// ==================== OrderUnitOfWork 下单工作单元 ====================

// OrderUnitOfWork 把订单与商品仓库绑在同一个 *gorm.DB 上
// 下单要求"逐项扣库存 + 落订单"要么全部生效、要么全部回滚，
// 单独注入两个仓库各持一个连接做不到这一点
type OrderUnitOfWork struct {
	db *gorm.DB

	Orders   OrderRepository
	Products ProductRepository
}

// NewOrderUnitOfWork 创建下单工作单元
func NewOrderUnitOfWork(db *gorm.DB) *OrderUnitOfWork {
	return &OrderUnitOfWork{
		db:       db,
		Orders:   NewOrderRepository(db),
		Products: NewProductRepository(db),
	}
}

// Transaction 在数据库事务内执行 fn，fn 拿到的工作单元里所有仓库都挂在事务连接上
// fn 返回错误时整个事务回滚
func (u *OrderUnitOfWork) Transaction(ctx context.Context, fn func(txUow *OrderUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &OrderUnitOfWork{
			db:       tx,
			Orders:   NewOrderRepository(tx),
			Products: NewProductRepository(tx),
		}
		return fn(txUow)
	})
}

// CountByShopAndStatus 按店铺和状态统计订单数
func (r *orderRepository) CountByShopAndStatus(ctx context.Context, shopID int64, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("shop_id = ? AND status = ?", shopID, status).
		Count(&count).Error
	return count, err
}

// GetShippedWithTracking 查询已发货且已录入物流单号的订单，供物流轮询任务使用
func (r *orderRepository) GetShippedWithTracking(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND tracking_number <> ''", model.OrderStatusShipped).
		Order("shipped_at").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
