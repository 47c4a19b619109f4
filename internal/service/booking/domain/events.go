package domain

import (
	"time"

	"github.com/google/uuid"
)

// 预订事件类型，通知服务和推送网关据此渲染消息
const (
	EventReservationCreated  = "RESERVATION_CREATED"
	EventReservationCanceled = "RESERVATION_CANCELED"
)

// ReservationEvent 是发到消息总线上的预订事件
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	ClientID      string    `json:"client_id"`
	TariffID      string    `json:"tariff_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Total         float64   `json:"total,omitempty"`
	Prepayment    float64   `json:"prepayment,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
