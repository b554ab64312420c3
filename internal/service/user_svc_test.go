package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/model"
	"certmart_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func newTestUserService(t *testing.T) (*UserService, func() error) {
	db := setupShopSvcTestDB(t)
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewShopRepository(db),
	)
	seed := func() error {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse-1"), bcrypt.DefaultCost)
		owner := model.SysUser{Username: "potter", Password: string(hashed), Role: model.RoleShopOwner, Status: model.UserStatusActive}
		owner.ID = 1
		if err := db.Create(&owner).Error; err != nil {
			return err
		}
		shop := model.Shop{ShopName: "zisha", OwnerUserID: 1, Status: model.ShopStatusActive}
		shop.ID = 10
		if err := db.Create(&shop).Error; err != nil {
			return err
		}
		return db.Create(&model.ShopMember{SysUserID: 1, ShopID: 10, Role: model.ShopRoleOwner}).Error
	}
	return svc, seed
}

// ==================== 单元测试 ====================

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &dto.RegisterRequest{Username: "buyer01", Password: "secret-pass-1", Email: "buyer@example.com"})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if info.Role != model.RoleCustomer {
		t.Errorf("注册用户默认角色应为 customer，实际 %s", info.Role)
	}

	// 重名注册
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "buyer01", Password: "secret-pass-2"}); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际 %v", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "buyer01", Password: "secret-pass-1"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Errorf("登录应返回双 Token")
	}
	if resp.User.ShopID != 0 {
		t.Errorf("买家 Token 不应携带店铺归属，实际 shop_id=%d", resp.User.ShopID)
	}

	// 密码错误与用户不存在同样的错误，不给探测空间
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "buyer01", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestUserService_LoginShopScoped(t *testing.T) {
	svc, seed := newTestUserService(t)
	if err := seed(); err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "potter", Password: "correct-horse-1"})
	if err != nil {
		t.Fatalf("店主登录失败: %v", err)
	}
	if resp.User.ShopID != 10 {
		t.Errorf("店主 Token 应携带店铺归属，实际 shop_id=%d", resp.User.ShopID)
	}
	if resp.User.ShopRole != model.ShopRoleOwner {
		t.Errorf("店主店铺内角色应为 owner，实际 %s", resp.User.ShopRole)
	}
}

func TestUserService_RefreshToken(t *testing.T) {
	svc, seed := newTestUserService(t)
	if err := seed(); err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "potter", Password: "correct-horse-1"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("刷新 Token 失败: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Errorf("刷新应返回新的 access token")
	}

	// access token 不能当 refresh token 用
	if _, err := svc.RefreshToken(ctx, resp.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际 %v", err)
	}

	// 乱写的串
	if _, err := svc.RefreshToken(ctx, "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("期望 ErrInvalidToken，实际 %v", err)
	}
}
