package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 物流跟踪服务 ====================

// 区域承运商的跟踪状态
const (
	TrackingStatusInTransit = "in_transit" // 运输中
	TrackingStatusDelivered = "delivered"  // 已签收
	TrackingStatusException = "exception"  // 异常
)

var ErrTrackingNotFound = errors.New("承运商查不到该单号")

// TrackingConfig 承运商跟踪 API 配置
type TrackingConfig struct {
	BaseURL string // API 地址
	ApiKey  string // 接口密钥
}

// TrackingService 承运商跟踪查询
type TrackingService struct {
	cfg    *TrackingConfig
	client *resty.Client
}

// NewTrackingService 初始化
func NewTrackingService(cfg *TrackingConfig) *TrackingService {
	client := resty.New()
	// 设置超时和重试，防止网络波动
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(3)
	client.SetHeader("x-api-key", cfg.ApiKey)

	return &TrackingService{cfg: cfg, client: client}
}

// trackingResp 承运商跟踪响应
type trackingResp struct {
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	LastLocation   string `json:"last_location"`
	LastUpdateAt   string `json:"last_update_at"`
}

// GetStatus 查询物流状态
func (s *TrackingService) GetStatus(ctx context.Context, carrierCode, trackingNumber string) (string, error) {
	var result trackingResp

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("carrier", carrierCode).
		SetResult(&result).
		Get(fmt.Sprintf("%s/v1/trackings/%s", s.cfg.BaseURL, trackingNumber))
	if err != nil {
		return "", err
	}

	if resp.StatusCode() == 404 {
		return "", ErrTrackingNotFound
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("承运商 API 错误: %d", resp.StatusCode())
	}

	return result.Status, nil
}
