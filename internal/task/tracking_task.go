package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"certmart_v1_202608/internal/repository"
	"certmart_v1_202608/internal/service"
)

// TrackingTask 物流轮询任务
// 轮询已发货订单的承运商跟踪状态，签收后走 ConfirmDelivery：
// 自动流转同样要过状态机与 CAS，不开后门
type TrackingTask struct {
	orderRepo   repository.OrderRepository
	orderSvc    *service.OrderService
	trackingSvc *service.TrackingService
	Cron        *cron.Cron

	batchSize int
}

func NewTrackingTask(orderRepo repository.OrderRepository, orderSvc *service.OrderService, trackingSvc *service.TrackingService) *TrackingTask {
	return &TrackingTask{
		orderRepo:   orderRepo,
		orderSvc:    orderSvc,
		trackingSvc: trackingSvc,
		Cron:        cron.New(cron.WithSeconds()),
		batchSize:   200,
	}
}

// Start 启动物流轮询任务
func (t *TrackingTask) Start() {
	// 策略：每 30 分钟轮询一次
	_, err := t.Cron.AddFunc("0 0/30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 TrackingTask: %v", err)
	}

	t.Cron.Start()
	log.Println("TrackingTask 物流轮询任务已启动 (每30分钟一次)")
}

// Execute 执行一轮轮询
func (t *TrackingTask) Execute(ctx context.Context) {
	orders, err := t.orderRepo.GetShippedWithTracking(ctx, t.batchSize)
	if err != nil {
		log.Printf("[TrackingTask] 查询已发货订单失败: %v", err)
		return
	}

	delivered := 0
	for _, order := range orders {
		status, err := t.trackingSvc.GetStatus(ctx, order.CarrierCode, order.TrackingNumber)
		if err != nil {
			log.Printf("[TrackingTask] 查询跟踪状态失败 order=%s: %v", order.OrderNo, err)
			continue
		}
		if status != service.TrackingStatusDelivered {
			continue
		}

		if err := t.orderSvc.ConfirmDelivery(ctx, order.ID); err != nil {
			// CAS 冲突说明别的请求已抢先流转，下一轮自然收敛
			log.Printf("[TrackingTask] 确认签收失败 order=%s: %v", order.OrderNo, err)
			continue
		}
		delivered++
	}

	if len(orders) > 0 {
		log.Printf("[TrackingTask] 本轮轮询 %d 单，确认签收 %d 单", len(orders), delivered)
	}
}

// Stop 停止任务
func (t *TrackingTask) Stop() {
	t.Cron.Stop()
}
