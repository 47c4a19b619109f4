package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reservation 是一条预订区间的快照。
// 生命周期（创建/取消/完成）由预订存储拥有；
// 冲突检查和计价只读取这里的区间和标志位。
type Reservation struct {
	ID        uuid.UUID
	ClientID  string // 会话侧的客户标识
	TariffID  string
	StartsAt  time.Time
	EndsAt    time.Time
	Occupants int

	Canceled  bool
	Completed bool
	Prepaid   bool

	PromoCode string
	CreatedAt time.Time
}

// Validate 在进入任何计算之前拒绝畸形的预订参数
func (r *Reservation) Validate() error {
	if !r.StartsAt.Before(r.EndsAt) {
		return ErrInvalidInterval
	}
	if r.Occupants <= 0 {
		return ErrInvalidOccupants
	}
	if r.TariffID == "" {
		return ErrTariffMissing
	}
	return nil
}

// DurationHours 返回预订区间的整小时时长
func (r *Reservation) DurationHours() int {
	return int(r.EndsAt.Sub(r.StartsAt).Hours())
}
