package infrastructure

import (
	"github.com/google/uuid"

	"lodge/internal/service/booking/domain"
)

// toDomainReservation 将数据库模型转换为领域模型
func toDomainReservation(model *ReservationModel) (*domain.Reservation, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Reservation{
		ID:        id,
		ClientID:  model.ClientID,
		TariffID:  model.TariffID,
		StartsAt:  model.StartsAt,
		EndsAt:    model.EndsAt,
		Occupants: model.Occupants,
		Canceled:  model.Canceled,
		Completed: model.Completed,
		Prepaid:   model.Prepaid,
		PromoCode: model.PromoCode,
		CreatedAt: model.CreatedAt,
	}, nil
}

// fromDomainReservation 将领域模型转换为数据库模型
func fromDomainReservation(r *domain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:        r.ID.String(),
		ClientID:  r.ClientID,
		TariffID:  r.TariffID,
		StartsAt:  r.StartsAt,
		EndsAt:    r.EndsAt,
		Occupants: r.Occupants,
		Canceled:  r.Canceled,
		Completed: r.Completed,
		Prepaid:   r.Prepaid,
		PromoCode: r.PromoCode,
		CreatedAt: r.CreatedAt,
	}
}
