package port

import (
	"context"
	"time"
)

// PromoValidation 是促销服务对一次校验请求的回答
type PromoValidation struct {
	Valid           bool    `json:"valid"`
	Reason          string  `json:"reason,omitempty"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}

// PromotionService 是促销服务的出站端口。
// 预订流程只在报价和落库前调用它，折扣的计算规则归促销上下文所有。
type PromotionService interface {
	ValidatePromocode(ctx context.Context, code string, reservationDate time.Time, tariffID string) (*PromoValidation, error)
}
