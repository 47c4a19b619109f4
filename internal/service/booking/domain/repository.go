package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReservationRepository 是预订持久化的"插座"，由基础设施层实现。
// 冲突检查和时段生成只消费这里返回的快照，不直接触碰存储。
type ReservationRepository interface {
	// FindOverlapping 返回与 [from, to) 有交集的未取消预订。
	// includeNonPrepaid 为 false 时只返回已预付的预订。
	FindOverlapping(ctx context.Context, from, to time.Time, includeNonPrepaid bool) ([]Reservation, error)
	// FindByDay 返回给定日历日内的未取消预订，excludeID 非零时跳过该条
	FindByDay(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
	// UpdateFlags 持久化取消/完成/已预付标志位的变更
	UpdateFlags(ctx context.Context, reservation *Reservation) error
}

// EventPublisher 把预订事件发到消息总线
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, event *ReservationEvent) error
}

// DraftStore 保存每个会话的预订草稿
type DraftStore interface {
	Get(ctx context.Context, chatID string) (*Draft, error)
	Save(ctx context.Context, draft *Draft) error
	Delete(ctx context.Context, chatID string) error
}

// CalendarSync 把确认的预订同步到外部日历
type CalendarSync interface {
	PushReservation(ctx context.Context, reservation *Reservation) error
	RemoveReservation(ctx context.Context, id uuid.UUID) error
}

// ReservationLocker 把"查冲突 → 写入"的临界区串行化。
// 没有这一层，两个并发请求可能同时看到"无冲突"然后都写入重叠的预订；
// 仅靠起止时间的唯一约束挡不住部分重叠。
type ReservationLocker interface {
	WithLock(ctx context.Context, fn func() error) error
}
