package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 测试模型 ====================

type TestOrderRow struct {
	ID             int64 `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt
	OrderNo        string
	ShopID         int64
	BuyerUserID    int64
	Status         string
	CarrierCode    string
	TrackingNumber string
	ShippedAt      *time.Time
}

func (TestOrderRow) TableName() string { return "orders" }

// ==================== 测试辅助 ====================

func setupOrderRepoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&TestOrderRow{})
	return db
}

// ==================== 单元测试 ====================

func TestOrderRepository_UpdateStatusCAS(t *testing.T) {
	db := setupOrderRepoTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	db.Create(&TestOrderRow{ID: 1, OrderNo: "CM20260831TEST0001", ShopID: 10, BuyerUserID: 100, Status: "pending"})

	// 第一次 CAS：pending -> confirmed 成功
	if err := repo.UpdateStatusCAS(ctx, 1, "pending", "confirmed"); err != nil {
		t.Fatalf("CAS 更新失败: %v", err)
	}

	var row TestOrderRow
	db.First(&row, 1)
	if row.Status != "confirmed" {
		t.Errorf("期望状态 confirmed，实际 %s", row.Status)
	}

	// 第二次用同样的前置条件：数据库已不是 pending，应返回冲突
	err := repo.UpdateStatusCAS(ctx, 1, "pending", "confirmed")
	if !errors.Is(err, ErrStatusConflict) {
		t.Errorf("期望 ErrStatusConflict，实际 %v", err)
	}

	// 冲突时状态不应被改动
	db.First(&row, 1)
	if row.Status != "confirmed" {
		t.Errorf("冲突后状态不应变化，实际 %s", row.Status)
	}
}

func TestOrderRepository_UpdateStatusCAS_NotFound(t *testing.T) {
	db := setupOrderRepoTestDB(t)
	repo := NewOrderRepository(db)

	// 不存在的订单同样表现为 0 行受影响
	err := repo.UpdateStatusCAS(context.Background(), 999, "pending", "confirmed")
	if !errors.Is(err, ErrStatusConflict) {
		t.Errorf("期望 ErrStatusConflict，实际 %v", err)
	}
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	db := setupOrderRepoTestDB(t)
	repo := NewOrderRepository(db)

	order, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if order != nil {
		t.Errorf("不存在的订单应返回 nil")
	}
}

func TestOrderRepository_GetShippedWithTracking(t *testing.T) {
	db := setupOrderRepoTestDB(t)
	repo := NewOrderRepository(db)

	now := time.Now()
	db.Create(&TestOrderRow{ID: 1, OrderNo: "CM1", Status: "shipped", TrackingNumber: "SF123", ShippedAt: &now})
	db.Create(&TestOrderRow{ID: 2, OrderNo: "CM2", Status: "shipped", TrackingNumber: ""})
	db.Create(&TestOrderRow{ID: 3, OrderNo: "CM3", Status: "delivered", TrackingNumber: "SF456"})

	orders, err := repo.GetShippedWithTracking(context.Background(), 10)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("期望 1 条待轮询订单，实际 %d", len(orders))
	}
	if orders[0].OrderNo != "CM1" {
		t.Errorf("期望订单 CM1，实际 %s", orders[0].OrderNo)
	}
}
