package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"certmart_v1_202608/internal/model"
)

// ==================== ShopRepository 店铺仓库 ====================

// ShopRepository 店铺仓库接口
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	GetByOwner(ctx context.Context, ownerUserID int64) (*model.Shop, error)
	Update(ctx context.Context, shop *model.Shop) error
	UpdateStatus(ctx context.Context, id int64, status int) error
	List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error)

	// 成员关系
	GetMember(ctx context.Context, userID, shopID int64) (*model.ShopMember, error)
	GetMembership(ctx context.Context, userID int64) (*model.ShopMember, error)
	AddMember(ctx context.Context, member *model.ShopMember) error
	RemoveMember(ctx context.Context, userID, shopID int64) error
	ListMembers(ctx context.Context, shopID int64) ([]model.ShopMember, error)
}

// ShopFilter 店铺筛选条件
type ShopFilter struct {
	Region   string
	Status   *int
	Keyword  string
	Page     int
	PageSize int
}

// ==================== 实现 ====================

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

// GetByID 根据 ID 获取店铺，不存在时返回 (nil, nil)
func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

// GetByOwner 根据店主获取店铺
func (r *shopRepository) GetByOwner(ctx context.Context, ownerUserID int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepository) Update(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// UpdateStatus 更新店铺状态
func (r *shopRepository) UpdateStatus(ctx context.Context, id int64, status int) error {
	return r.db.WithContext(ctx).Model(&model.Shop{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List 分页查询店铺
func (r *shopRepository) List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error) {
	var shops []model.Shop
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Shop{})

	if filter.Region != "" {
		db = db.Where("region = ?", filter.Region)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		db = db.Where("shop_name LIKE ? OR title LIKE ?", keyword, keyword)
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
		Find(&shops).Error
	return shops, total, err
}

// ==================== 成员关系 ====================

// GetMember 查询用户在指定店铺的成员关系，不存在时返回 (nil, nil)
func (r *shopRepository) GetMember(ctx context.Context, userID, shopID int64) (*model.ShopMember, error) {
	var member model.ShopMember
	err := r.db.WithContext(ctx).
		Where("sys_user_id = ? AND shop_id = ?", userID, shopID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

// GetMembership 查询用户的店铺成员关系
// 店铺级角色最多隶属一家店铺，取第一条即可
func (r *shopRepository) GetMembership(ctx context.Context, userID int64) (*model.ShopMember, error) {
	var member model.ShopMember
	err := r.db.WithContext(ctx).
		Where("sys_user_id = ?", userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

// AddMember 添加店铺成员
func (r *shopRepository) AddMember(ctx context.Context, member *model.ShopMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// RemoveMember 移除店铺成员
func (r *shopRepository) RemoveMember(ctx context.Context, userID, shopID int64) error {
	return r.db.WithContext(ctx).
		Where("sys_user_id = ? AND shop_id = ?", userID, shopID).
		Delete(&model.ShopMember{}).Error
}

// ListMembers 查询店铺全部成员
func (r *shopRepository) ListMembers(ctx context.Context, shopID int64) ([]model.ShopMember, error) {
	var members []model.ShopMember
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id").
		Find(&members).Error
	return members, err
}
