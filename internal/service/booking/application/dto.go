package application

import (
	"time"

	"github.com/google/uuid"
)

// CheckAvailabilityRequest 是可用性检查的请求体
type CheckAvailabilityRequest struct {
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	ExcludeID string    `json:"exclude_id,omitempty"` // 改期时跳过自身
}

// CheckAvailabilityResponse 是可用性检查的响应体
type CheckAvailabilityResponse struct {
	Available bool     `json:"available"`
	Conflicts []string `json:"conflicts,omitempty"` // 冲突预订的 ID
}

// FreeSlotsResponse 是空闲时段查询的响应体
type FreeSlotsResponse struct {
	Day   string     `json:"day"`
	Slots []SlotView `json:"slots"`
}

// SlotView 是一段空闲时间的展示形式
type SlotView struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`
}

// QuoteRequest 是一次完整报价（价格 + 促销码 + 预付）的请求体
type QuoteRequest struct {
	TariffID  string    `json:"tariff_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Occupants int       `json:"occupants"`

	Sauna         bool `json:"sauna"`
	SecretRoom    bool `json:"secret_room"`
	SecondBedroom bool `json:"second_bedroom"`
	Photoshoot    bool `json:"photoshoot"`

	PromoCode string `json:"promo_code,omitempty"`
}

// QuoteResponse 汇总了一次报价的全部结果
type QuoteResponse struct {
	TariffID      string             `json:"tariff_id"`
	DurationHours int                `json:"duration_hours"`
	Base          float64            `json:"base"`
	AddOns        map[string]float64 `json:"add_ons,omitempty"`
	Total         float64            `json:"total"`
	OverrideRule  string             `json:"override_rule,omitempty"`

	PromoApplied    bool    `json:"promo_applied"`
	PromoCode       string  `json:"promo_code,omitempty"`
	PromoReason     string  `json:"promo_reason,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`

	Prepayment  float64 `json:"prepayment"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName string  `json:"holiday_name,omitempty"`
}

// CreateReservationRequest 是创建预订的请求体
type CreateReservationRequest struct {
	ChatID    string    `json:"chat_id"`
	TariffID  string    `json:"tariff_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Occupants int       `json:"occupants"`

	Sauna         bool `json:"sauna"`
	SecretRoom    bool `json:"secret_room"`
	SecondBedroom bool `json:"second_bedroom"`
	Photoshoot    bool `json:"photoshoot"`

	PromoCode string `json:"promo_code,omitempty"`
}

// CreateReservationResponse 是创建预订的响应体
type CreateReservationResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Total         float64   `json:"total"`
	Prepayment    float64   `json:"prepayment"`
}

// CancelReservationRequest 是取消预订的请求体
type CancelReservationRequest struct {
	ReservationID uuid.UUID `json:"reservation_id"`
}
