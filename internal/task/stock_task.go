package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"certmart_v1_202608/internal/repository"
)

// StockTask 库存刷新任务
// out_of_stock 是派生视图：在售且零库存的商品打上 stock_out 标记，
// 补货或离开在售状态后清掉。只动标记位，不触碰生命周期状态
type StockTask struct {
	productRepo repository.ProductRepository
	Cron        *cron.Cron
}

func NewStockTask(productRepo repository.ProductRepository) *StockTask {
	return &StockTask{
		productRepo: productRepo,
		Cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动库存刷新任务
func (t *StockTask) Start() {
	// 策略：每 5 分钟刷新一次
	_, err := t.Cron.AddFunc("0 0/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 StockTask: %v", err)
	}

	t.Cron.Start()
	log.Println("StockTask 库存刷新任务已启动 (每5分钟一次)")
}

// Execute 执行一轮库存标记刷新
func (t *StockTask) Execute(ctx context.Context) {
	marked, err := t.productRepo.MarkStockOut(ctx)
	if err != nil {
		log.Printf("[StockTask] 标记缺货失败: %v", err)
		return
	}

	cleared, err := t.productRepo.ClearStockOut(ctx)
	if err != nil {
		log.Printf("[StockTask] 清除缺货标记失败: %v", err)
		return
	}

	if marked > 0 || cleared > 0 {
		log.Printf("[StockTask] 本轮标记缺货 %d 件，清除标记 %d 件", marked, cleared)
	}
}

// Stop 停止任务
func (t *StockTask) Stop() {
	t.Cron.Stop()
}
