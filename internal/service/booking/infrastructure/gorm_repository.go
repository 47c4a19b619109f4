package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lodge/internal/service/booking/domain"
)

// GormReservationRepository 是 ReservationRepository 的 GORM 实现
type GormReservationRepository struct {
	db          *gorm.DB
	bufferHours int
}

func NewGormReservationRepository(db *gorm.DB, bufferHours int) *GormReservationRepository {
	return &GormReservationRepository{db: db, bufferHours: bufferHours}
}

// FindOverlapping 返回与 [from, to) 有交集的未取消预订
func (r *GormReservationRepository) FindOverlapping(ctx context.Context, from, to time.Time, includeNonPrepaid bool) ([]domain.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("canceled = ?", false).
		Where("starts_at < ? AND ends_at > ?", to, from)
	if !includeNonPrepaid {
		query = query.Where("prepaid = ?", true)
	}

	var models []ReservationModel
	if err := query.Order("starts_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(models)
}

// FindByDay 返回给定日历日内的未取消预订。
// 查询窗口向两侧扩展清扫缓冲，前一天结束但缓冲伸入当天的预订也要进入快照。
func (r *GormReservationRepository) FindByDay(ctx context.Context, day time.Time, excludeID uuid.UUID) ([]domain.Reservation, error) {
	from, to := dayQueryWindow(day, r.bufferHours)

	query := r.db.WithContext(ctx).
		Where("canceled = ?", false).
		Where("starts_at < ? AND ends_at > ?", to, from)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID.String())
	}

	var models []ReservationModel
	if err := query.Order("starts_at").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(models)
}

func dayQueryWindow(day time.Time, bufferHours int) (time.Time, time.Time) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	buffer := time.Duration(bufferHours) * time.Hour
	return dayStart.Add(-buffer), dayStart.AddDate(0, 0, 1).Add(buffer)
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	var model ReservationModel
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return toDomainReservation(&model)
}

func (r *GormReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(fromDomainReservation(reservation)).Error
}

// UpdateFlags 只更新生命周期标志位，区间字段保持不变
func (r *GormReservationRepository) UpdateFlags(ctx context.Context, reservation *domain.Reservation) error {
	updateData := map[string]interface{}{
		"canceled":  reservation.Canceled,
		"completed": reservation.Completed,
		"prepaid":   reservation.Prepaid,
	}
	return r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("id = ?", reservation.ID.String()).
		Updates(updateData).Error
}

func (r *GormReservationRepository) toDomainSlice(models []ReservationModel) ([]domain.Reservation, error) {
	reservations := make([]domain.Reservation, 0, len(models))
	for i := range models {
		reservation, err := toDomainReservation(&models[i])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *reservation)
	}
	return reservations, nil
}
