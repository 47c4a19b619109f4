package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lodge/internal/pkg/httpclient"
	"lodge/internal/service/booking/domain"
)

// CalendarHTTPAdapter 通过 HTTP webhook 把预订同步到外部日历服务。
// 同步失败不会回滚预订，调用方只记录告警。
type CalendarHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewCalendarHTTPAdapter(client *httpclient.Client, baseURL string) *CalendarHTTPAdapter {
	return &CalendarHTTPAdapter{client: client, baseURL: baseURL}
}

type calendarEventPayload struct {
	EventID  string    `json:"event_id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

func (a *CalendarHTTPAdapter) PushReservation(ctx context.Context, reservation *domain.Reservation) error {
	payload := calendarEventPayload{
		EventID:  reservation.ID.String(),
		Title:    fmt.Sprintf("Reservation %s (%s)", reservation.ID, reservation.TariffID),
		StartsAt: reservation.StartsAt,
		EndsAt:   reservation.EndsAt,
	}
	return a.client.PostJSON(ctx, a.baseURL+"/events", payload)
}

func (a *CalendarHTTPAdapter) RemoveReservation(ctx context.Context, id uuid.UUID) error {
	payload := map[string]string{"event_id": id.String()}
	return a.client.PostJSON(ctx, a.baseURL+"/events/remove", payload)
}
