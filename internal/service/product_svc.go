package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/authz"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/repository"
)

var (
	ErrShopNotActive = errors.New("店铺未通过审核或已停用")
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	auth        *authz.Authorizer
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, shopRepo repository.ShopRepository, auth *authz.Authorizer) *ProductService {
	return &ProductService{productRepo: productRepo, shopRepo: shopRepo, auth: auth}
}

// productResource 商品转授权资源快照
func productResource(p *model.Product) authz.Resource {
	if p == nil {
		return authz.Resource{Type: authz.ResourceProduct}
	}
	return authz.Resource{
		Type:   authz.ResourceProduct,
		ID:     p.ID,
		ShopID: p.ShopID,
		Status: p.Status,
	}
}

// toProductView 商品转视图
func toProductView(p *model.Product) *dto.ProductView {
	return &dto.ProductView{
		ID:            p.ID,
		ShopID:        p.ShopID,
		Title:         p.Title,
		LocalSKU:      p.LocalSKU,
		Status:        p.Status,
		CertNumber:    p.CertNumber,
		CertAuthority: p.CertAuthority,
		PriceAmount:   p.PriceAmount,
		CurrencyCode:  p.CurrencyCode,
		Quantity:      p.Quantity,
		OutOfStock:    p.IsOutOfStock(),
		Tags:          p.Tags,
	}
}

// ==================== CRUD ====================

// CreateProduct 创建商品，初始状态 draft
// create 不针对已有实例，只过矩阵 + 店铺归属，不走归属资源守卫
func (s *ProductService) CreateProduct(ctx context.Context, id authz.Identity, req *dto.CreateProductRequest) (*dto.ProductView, error) {
	if d := s.auth.CanCreateResource(id, authz.ResourceProduct, 0); !d.Allowed {
		return nil, d.Err()
	}

	shop, err := s.shopRepo.GetByID(ctx, id.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, authz.ErrResourceNotFound
	}
	if !shop.IsActive() {
		return nil, ErrShopNotActive
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = shop.CurrencyCode
	}

	product := &model.Product{
		ShopID:        id.ShopID,
		Title:         req.Title,
		Description:   req.Description,
		LocalSKU:      req.LocalSKU,
		Status:        model.ProductStatusDraft,
		CertNumber:    req.CertNumber,
		CertAuthority: req.CertAuthority,
		PriceAmount:   req.PriceAmount,
		CurrencyCode:  currency,
		Quantity:      req.Quantity,
		Tags:          req.Tags,
		Materials:     req.Materials,
		Attributes:    datatypes.JSONMap{},
	}
	product.CreatedBy = id.UserID

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductView(product), nil
}

// GetProduct 查商品
func (s *ProductService) GetProduct(ctx context.Context, productID int64) (*dto.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, authz.ErrResourceNotFound
	}
	return toProductView(product), nil
}

// ListProducts 商品列表
// 店铺级身份点名店铺时交叉校验，防止点名他店做批量查询
func (s *ProductService) ListProducts(ctx context.Context, id authz.Identity, filter repository.ProductFilter) ([]dto.ProductView, int64, error) {
	if id.Role.IsShopScoped() {
		if d := authz.ShopAffiliated(id, authz.ShopRoleStaff, filter.ShopID); !d.Allowed {
			return nil, 0, d.Err()
		}
		filter.ShopID = id.ShopID
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]dto.ProductView, 0, len(products))
	for i := range products {
		views = append(views, *toProductView(&products[i]))
	}
	return views, total, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, id authz.Identity, productID int64, req *dto.UpdateProductRequest) (*dto.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if d := s.auth.CanModifyOwnedResource(id, productResource(product), authz.ActionUpdate); !d.Allowed {
		return nil, d.Err()
	}
	// 停售商品不接受任何编辑
	if !authz.ActionAllowedInStatus(product.Status, authz.ActionUpdate) {
		return nil, authz.DenyTransition(product.Status, product.Status).Err()
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PriceAmount != nil {
		product.PriceAmount = *req.PriceAmount
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	product.UpdatedBy = id.UserID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductView(product), nil
}

// DeleteProduct 删除商品
// 在售商品不可直接删除，先下架
func (s *ProductService) DeleteProduct(ctx context.Context, id authz.Identity, productID int64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if d := s.auth.CanModifyOwnedResource(id, productResource(product), authz.ActionDelete); !d.Allowed {
		return d.Err()
	}
	if !authz.ActionAllowedInStatus(product.Status, authz.ActionDelete) {
		return authz.DenyTransition(product.Status, product.Status).Err()
	}

	return s.productRepo.Delete(ctx, productID)
}

// ==================== 状态流转 ====================

// ChangeStatus 商品状态流转（提交审核 / 审核通过 / 上下架 / 停售）
// 守卫通过后用 CAS 落库：授权核心回答"孤立看是否合法"，
// 并发下真正生效与否由条件更新裁决
func (s *ProductService) ChangeStatus(ctx context.Context, id authz.Identity, productID int64, req *dto.ChangeProductStatusRequest) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if d := s.auth.CanChangeProductStatus(id, productResource(product), req.Status); !d.Allowed {
		return d.Err()
	}

	if err := s.productRepo.UpdateStatusCAS(ctx, productID, product.Status, req.Status); err != nil {
		return err
	}

	// 审核类流转补记审核人
	if product.Status == model.ProductStatusPendingReview && req.Status == model.ProductStatusActive {
		fields := map[string]interface{}{"reviewed_by": id.UserID}
		if req.ReviewNote != "" {
			fields["review_note"] = req.ReviewNote
		}
		if err := s.productRepo.UpdateFields(ctx, productID, fields); err != nil {
			log.Printf("记录审核人失败 product=%d: %v", productID, err)
		}
	}
	return nil
}

// FeatureProduct 设为推荐，仅在售商品
func (s *ProductService) FeatureProduct(ctx context.Context, id authz.Identity, productID int64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if d := s.auth.CanModifyOwnedResource(id, productResource(product), authz.ActionFeature); !d.Allowed {
		return d.Err()
	}
	if !authz.ActionAllowedInStatus(product.Status, authz.ActionFeature) {
		return authz.DenyTransition(product.Status, product.Status).Err()
	}

	return s.productRepo.UpdateFields(ctx, productID, map[string]interface{}{
		"is_featured": true,
		"featured_at": time.Now(),
	})
}
