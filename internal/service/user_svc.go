package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/middleware"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/repository"
)

// 业务错误
var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已禁用")
	ErrInvalidToken       = errors.New("Token 无效")
	ErrUsernameExists     = errors.New("用户名已存在")
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, shopRepo repository.ShopRepository) *UserService {
	return &UserService{userRepo: userRepo, shopRepo: shopRepo}
}

// ==================== 认证相关 ====================

// Register 买家注册
// 店铺成员不走注册：由店主通过成员管理添加
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.SysUser{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		Role:     model.RoleCustomer,
		Status:   model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// Login 用户登录
// 店铺级角色在签发 Token 时带上店铺归属与店铺内角色
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 查找用户
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 检查状态
	if !user.IsActive() {
		return nil, ErrUserDisabled
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 店铺级角色补齐店铺归属
	var shopID int64
	var shopRole string
	if user.IsShopScoped() {
		member, err := s.shopRepo.GetMembership(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			shopID = member.ShopID
			shopRole = member.Role
		}
	}

	// 生成 Token
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role, shopID, shopRole)
	if err != nil {
		return nil, err
	}

	// 更新最后登录时间
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(cfg.AccessTokenTTL.Seconds()),
		User: dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			ShopID:   shopID,
			ShopRole: shopRole,
		},
	}, nil
}

// RefreshToken 用 Refresh Token 换新 Token 对
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 重新查库，角色/状态可能已变
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, ErrUserDisabled
	}

	var shopID int64
	var shopRole string
	if user.IsShopScoped() {
		member, err := s.shopRepo.GetMembership(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if member != nil {
			shopID = member.ShopID
			shopRole = member.Role
		}
	}

	accessToken, newRefresh, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role, shopID, shopRole)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int64(cfg.AccessTokenTTL.Seconds()),
		User: dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			ShopID:   shopID,
			ShopRole: shopRole,
		},
	}, nil
}
