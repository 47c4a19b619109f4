package adapter

import (
	"context"
	"time"

	"lodge/internal/pkg/httpclient"
	"lodge/internal/service/booking/port"
)

// PromotionHTTPAdapter 实现了 port.PromotionService 接口，
// 通过 HTTP 调用促销服务校验促销码
type PromotionHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewPromotionHTTPAdapter(client *httpclient.Client, baseURL string) *PromotionHTTPAdapter {
	return &PromotionHTTPAdapter{client: client, baseURL: baseURL}
}

type validatePromocodePayload struct {
	Code            string `json:"code"`
	ReservationDate string `json:"reservation_date"`
	TariffID        string `json:"tariff_id"`
}

func (a *PromotionHTTPAdapter) ValidatePromocode(ctx context.Context, code string, reservationDate time.Time, tariffID string) (*port.PromoValidation, error) {
	payload := validatePromocodePayload{
		Code:            code,
		ReservationDate: reservationDate.Format(time.RFC3339),
		TariffID:        tariffID,
	}
	var result port.PromoValidation
	if err := a.client.PostJSONDecode(ctx, a.baseURL+"/validate_promocode", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
