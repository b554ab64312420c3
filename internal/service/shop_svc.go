package service

import (
	"context"
	"errors"
	"time"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/authz"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/repository"
)

var (
	ErrMemberExists   = errors.New("该用户已是店铺成员")
	ErrMemberNotFound = errors.New("店铺成员不存在")
	ErrOwnerImmutable = errors.New("店主成员关系不可移除")
)

// ==================== ShopService 店铺服务 ====================

// ShopService 店铺服务
type ShopService struct {
	shopRepo repository.ShopRepository
	userRepo repository.UserRepository
	auth     *authz.Authorizer
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository, userRepo repository.UserRepository, auth *authz.Authorizer) *ShopService {
	return &ShopService{shopRepo: shopRepo, userRepo: userRepo, auth: auth}
}

// shopResource 店铺转授权资源快照
func shopResource(shop *model.Shop) authz.Resource {
	if shop == nil {
		return authz.Resource{Type: authz.ResourceShop}
	}
	return authz.Resource{
		Type:        authz.ResourceShop,
		ID:          shop.ID,
		OwnerUserID: shop.OwnerUserID,
	}
}

// GetShop 查店铺
func (s *ShopService) GetShop(ctx context.Context, shopID int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, authz.ErrResourceNotFound
	}
	return shop, nil
}

// UpdateShop 更新店铺资料
// requestedShopID: 请求路径/参数里点名的店铺 ID，守卫会与身份归属交叉校验
func (s *ShopService) UpdateShop(ctx context.Context, id authz.Identity, shopID int64, req *dto.UpdateShopRequest) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if d := s.auth.CanManageOwnShop(id, shopResource(shop), shopID); !d.Allowed {
		return nil, d.Err()
	}

	if req.Title != nil {
		shop.Title = *req.Title
	}
	if req.Announcement != nil {
		shop.Announcement = *req.Announcement
	}
	shop.UpdatedBy = id.UserID

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ==================== 平台审查 ====================

// ApproveShop 审核通过店铺（平台审查动作）
func (s *ShopService) ApproveShop(ctx context.Context, id authz.Identity, shopID int64) error {
	if d := s.auth.CanModerateAnyShop(id); !d.Allowed {
		return d.Err()
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return authz.ErrResourceNotFound
	}

	now := time.Now()
	shop.Status = model.ShopStatusActive
	shop.ActivatedAt = &now
	shop.UpdatedBy = id.UserID
	return s.shopRepo.Update(ctx, shop)
}

// SuspendShop 停用店铺（平台审查动作）
func (s *ShopService) SuspendShop(ctx context.Context, id authz.Identity, shopID int64) error {
	if d := s.auth.CanModerateAnyShop(id); !d.Allowed {
		return d.Err()
	}

	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if shop == nil {
		return authz.ErrResourceNotFound
	}

	now := time.Now()
	shop.Status = model.ShopStatusSuspended
	shop.SuspendedAt = &now
	shop.UpdatedBy = id.UserID
	return s.shopRepo.Update(ctx, shop)
}

// ==================== 成员管理 ====================

// canManageMembers 成员管理守卫：矩阵 manage_members 位 + 店铺归属
// 店铺侧只有 owner 有 manage_members（见矩阵），平台管理员按矩阵放行
func (s *ShopService) canManageMembers(id authz.Identity, shop *model.Shop, requestedShopID int64) authz.Decision {
	if shop == nil {
		return authz.Deny(authz.DenyResourceNotFound)
	}
	if id.Role.IsPlatform() {
		if d := s.auth.CanModerateAnyShop(id); d.Allowed {
			return authz.Allow()
		}
		return authz.Deny(authz.DenyInsufficientRole)
	}
	if d := authz.ShopAffiliated(id, authz.ShopRoleOwner, requestedShopID); !d.Allowed {
		return d
	}
	if !authz.OwnsResource(id, shopResource(shop), authz.OwnerAxisShop) {
		return authz.Deny(authz.DenyWrongShop)
	}
	return authz.Allow()
}

// AddMember 添加店铺成员
func (s *ShopService) AddMember(ctx context.Context, id authz.Identity, shopID int64, req *dto.AddMemberRequest) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if d := s.canManageMembers(id, shop, shopID); !d.Allowed {
		return d.Err()
	}

	existing, err := s.shopRepo.GetMember(ctx, req.UserID, shopID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrMemberExists
	}

	// 同步更新用户的全局角色
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return authz.ErrResourceNotFound
	}
	switch req.Role {
	case model.ShopRoleAdmin:
		user.Role = model.RoleShopAdmin
	default:
		user.Role = model.RoleShopStaff
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.shopRepo.AddMember(ctx, &model.ShopMember{
		SysUserID: req.UserID,
		ShopID:    shopID,
		Role:      req.Role,
	})
}

// RemoveMember 移除店铺成员，店主关系不可移除
func (s *ShopService) RemoveMember(ctx context.Context, id authz.Identity, shopID, userID int64) error {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if d := s.canManageMembers(id, shop, shopID); !d.Allowed {
		return d.Err()
	}

	member, err := s.shopRepo.GetMember(ctx, userID, shopID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	if member.Role == model.ShopRoleOwner {
		return ErrOwnerImmutable
	}

	// 移除成员后该用户退回普通买家
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user != nil {
		user.Role = model.RoleCustomer
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
	}

	return s.shopRepo.RemoveMember(ctx, userID, shopID)
}

// ListMembers 查询店铺成员列表
func (s *ShopService) ListMembers(ctx context.Context, id authz.Identity, shopID int64) ([]dto.ShopMemberView, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	// 查看成员列表：店铺任意成员或平台级角色
	if shop == nil {
		return nil, authz.ErrResourceNotFound
	}
	if !id.Role.IsPlatform() {
		if d := authz.ShopAffiliated(id, authz.ShopRoleStaff, shopID); !d.Allowed {
			return nil, d.Err()
		}
	}

	members, err := s.shopRepo.ListMembers(ctx, shopID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ShopMemberView, 0, len(members))
	for _, m := range members {
		view := dto.ShopMemberView{UserID: m.SysUserID, Role: m.Role}
		if user, err := s.userRepo.GetByID(ctx, m.SysUserID); err == nil && user != nil {
			view.Username = user.Username
		}
		views = append(views, view)
	}
	return views, nil
}
