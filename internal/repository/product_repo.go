package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"certmart_v1_202608/internal/model"
)

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	ShopID   int64
	Status   string
	Keyword  string
	StockOut *bool
	Page     int
	PageSize int
}

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// UpdateStatusCAS 条件状态更新，语义同订单仓库
	UpdateStatusCAS(ctx context.Context, id int64, from, to string) error

	// DecrementStock 条件扣库存：仅当剩余库存足够时落库，返回影响行数
	// 影响行数为 0 说明并发下单已把库存抢光，调用方据此失败整个订单
	DecrementStock(ctx context.Context, id int64, qty int) (int64, error)

	// 库存派生标记维护，供库存任务批量刷新
	MarkStockOut(ctx context.Context) (int64, error)
	ClearStockOut(ctx context.Context) (int64, error)
}

// ==================== 实现 ====================

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID 根据 ID 获取商品，不存在时返回 (nil, nil)
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// List 分页查询商品
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.ShopID > 0 {
		db = db.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StockOut != nil {
		db = db.Where("stock_out = ?", *filter.StockOut)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		db = db.Where("title LIKE ? OR local_sku LIKE ? OR cert_number LIKE ?", keyword, keyword, keyword)
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
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateFields 更新指定字段
func (r *productRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete 删除商品（软删除）
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

// UpdateStatusCAS 条件状态更新，影响行数为 0 返回 ErrStatusConflict
func (r *productRepository) UpdateStatusCAS(ctx context.Context, id int64, from, to string) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
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

// DecrementStock 条件扣库存
// UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?
func (r *productRepository) DecrementStock(ctx context.Context, id int64, qty int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return result.RowsAffected, result.Error
}

// MarkStockOut 把在售且零库存的商品打上缺货标记
// 只动派生标记 stock_out，不触碰生命周期 status
func (r *productRepository) MarkStockOut(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("status = ? AND quantity <= 0 AND stock_out = ?", model.ProductStatusActive, false).
		Update("stock_out", true)
	return result.RowsAffected, result.Error
}

// ClearStockOut 清掉已补货或已离开在售状态的缺货标记
func (r *productRepository) ClearStockOut(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("stock_out = ? AND (quantity > 0 OR status <> ?)", true, model.ProductStatusActive).
		Update("stock_out", false)
	return result.RowsAffected, result.Error
}
