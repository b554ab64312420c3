package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"certmart_v1_202608/internal/api/dto"
	"certmart_v1_202608/internal/authz"
	"certmart_v1_202608/internal/repository"
)

// ==================== 测试模型 ====================

type TestProductSvcRow struct {
	ID         int64 `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
	ShopID     int64
	Title      string
	Status     string
	Quantity   int
	StockOut   bool
	ReviewedBy int64
	ReviewNote string
	IsFeatured bool
	FeaturedAt *time.Time
}

func (TestProductSvcRow) TableName() string { return "products" }

// ==================== 测试辅助 ====================

func setupProductSvcTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&TestProductSvcRow{})
	return db
}

func newTestProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewShopRepository(db),
		authz.NewAuthorizer(authz.DefaultMatrix()),
	)
}

// ==================== 单元测试 ====================

func TestProductService_ChangeStatus_SubmitAndApprove(t *testing.T) {
	db := setupProductSvcTestDB(t)
	svc := newTestProductService(db)
	ctx := context.Background()

	db.Create(&TestProductSvcRow{ID: 1, ShopID: 10, Title: "朱泥西施壶", Status: "draft"})

	admin := shopAdminIdentity(5, 10)
	moderator := authz.Identity{UserID: 50, Role: authz.RoleModerator}

	// 店铺侧提交审核
	if err := svc.ChangeStatus(ctx, admin, 1, &dto.ChangeProductStatusRequest{Status: "pending_review"}); err != nil {
		t.Fatalf("draft -> pending_review 应成功: %v", err)
	}

	// 店铺侧不能自己把商品放行上架
	err := svc.ChangeStatus(ctx, admin, 1, &dto.ChangeProductStatusRequest{Status: "active"})
	if !errors.Is(err, authz.ErrForbidden) {
		t.Errorf("店铺侧批准上架应 403，实际 %v", err)
	}

	// 审核员放行并留痕
	if err := svc.ChangeStatus(ctx, moderator, 1, &dto.ChangeProductStatusRequest{Status: "active", ReviewNote: "证书核验通过"}); err != nil {
		t.Fatalf("审核通过失败: %v", err)
	}

	var row TestProductSvcRow
	db.First(&row, 1)
	if row.Status != "active" {
		t.Errorf("期望状态 active，实际 %s", row.Status)
	}
	if row.ReviewedBy != 50 {
		t.Errorf("审核人未记录，实际 %d", row.ReviewedBy)
	}
	if row.ReviewNote != "证书核验通过" {
		t.Errorf("审核备注未记录，实际 %q", row.ReviewNote)
	}
}

func TestProductService_ChangeStatus_ApproveWrongStatus(t *testing.T) {
	db := setupProductSvcTestDB(t)
	svc := newTestProductService(db)

	// 已在售的商品再审批：审核员角色够格，但状态机不允许
	db.Create(&TestProductSvcRow{ID: 1, ShopID: 10, Status: "active"})

	moderator := authz.Identity{UserID: 50, Role: authz.RoleModerator}
	err := svc.ChangeStatus(context.Background(), moderator, 1, &dto.ChangeProductStatusRequest{Status: "active"})

	var transErr *authz.TransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("期望 TransitionError，实际 %v", err)
	}
}

func TestProductService_DeleteProduct(t *testing.T) {
	db := setupProductSvcTestDB(t)
	svc := newTestProductService(db)
	ctx := context.Background()

	db.Create(&TestProductSvcRow{ID: 1, ShopID: 10, Status: "active"})
	db.Create(&TestProductSvcRow{ID: 2, ShopID: 10, Status: "draft"})
	db.Create(&TestProductSvcRow{ID: 3, ShopID: 20, Status: "draft"})

	admin := shopAdminIdentity(5, 10)

	// 在售商品不可直接删除
	err := svc.DeleteProduct(ctx, admin, 1)
	var transErr *authz.TransitionError
	if !errors.As(err, &transErr) {
		t.Errorf("在售商品删除应返回流转错误，实际 %v", err)
	}

	// 草稿可删
	if err := svc.DeleteProduct(ctx, admin, 2); err != nil {
		t.Fatalf("删除草稿商品失败: %v", err)
	}

	// 别家店的商品统一 403
	if err := svc.DeleteProduct(ctx, admin, 3); !errors.Is(err, authz.ErrForbidden) {
		t.Errorf("跨店删除应 403，实际 %v", err)
	}
}

func TestProductService_FeatureProduct(t *testing.T) {
	db := setupProductSvcTestDB(t)
	svc := newTestProductService(db)
	ctx := context.Background()

	db.Create(&TestProductSvcRow{ID: 1, ShopID: 10, Status: "active"})
	db.Create(&TestProductSvcRow{ID: 2, ShopID: 10, Status: "draft"})

	moderator := authz.Identity{UserID: 50, Role: authz.RoleModerator}

	if err := svc.FeatureProduct(ctx, moderator, 1); err != nil {
		t.Fatalf("推荐在售商品失败: %v", err)
	}
	var row TestProductSvcRow
	db.First(&row, 1)
	if !row.IsFeatured {
		t.Errorf("商品应被标记推荐")
	}
	if row.FeaturedAt == nil {
		t.Errorf("应补记 featured_at")
	}

	// 非在售商品不可推荐
	err := svc.FeatureProduct(ctx, moderator, 2)
	var transErr *authz.TransitionError
	if !errors.As(err, &transErr) {
		t.Errorf("推荐草稿商品应返回流转错误，实际 %v", err)
	}

	// 店铺侧没有推荐权
	if err := svc.FeatureProduct(ctx, shopAdminIdentity(5, 10), 1); !errors.Is(err, authz.ErrForbidden) {
		t.Errorf("店铺侧推荐应 403，实际 %v", err)
	}
}
