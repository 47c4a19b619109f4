package application

import "time"

// ValidatePromocodeRequest 是促销码校验的请求体
type ValidatePromocodeRequest struct {
	Code            string `json:"code"`
	ReservationDate string `json:"reservation_date"` // RFC 3339
	TariffID        string `json:"tariff_id"`
	Occupants       int    `json:"occupants,omitempty"`
}

// ValidatePromocodeResponse 是促销码校验的响应体。
// 未找到或不满足条件不是错误，而是 valid=false 加原因。
type ValidatePromocodeResponse struct {
	Valid           bool    `json:"valid"`
	Reason          string  `json:"reason,omitempty"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
}

// CreatePromocodeRequest 是创建促销码的请求体
type CreatePromocodeRequest struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	DiscountPercent float64  `json:"discount_percent"`
	ValidFrom       string   `json:"valid_from"` // YYYY-MM-DD
	ValidTo         string   `json:"valid_to"`
	TariffIDs       []string `json:"tariff_ids,omitempty"`
	RuleExpr        string   `json:"rule_expr,omitempty"`
}

// PromocodeView 是促销码的展示形式
type PromocodeView struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	DiscountPercent float64   `json:"discount_percent"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	TariffIDs       []string  `json:"tariff_ids,omitempty"`
	Active          bool      `json:"active"`
}
