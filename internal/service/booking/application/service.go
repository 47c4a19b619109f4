package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/metrics"
	"lodge/internal/service/booking/domain"
	"lodge/internal/service/booking/port"
	pricingapp "lodge/internal/service/pricing/application"
	pricingdomain "lodge/internal/service/pricing/domain"
)

// 冲突检查时向前后各多取这么多的已有预订，
// 保证跨日的长预订也会进入快照
const overlapFetchPadding = 48 * time.Hour

// BookingService 编排预订上下文的所有业务用例。
// 领域计算（冲突、时段、价格）都是纯函数，这一层负责
// 拉取快照、串行化写入、发事件和同步日历。
type BookingService struct {
	repo        domain.ReservationRepository
	pricing     *pricingapp.PricingService
	promotion   port.PromotionService
	locker      domain.ReservationLocker
	publisher   domain.EventPublisher
	drafts      domain.DraftStore
	calendar    domain.CalendarSync
	bufferHours int
	tracer      trace.Tracer
	now         func() time.Time
}

func NewBookingService(
	repo domain.ReservationRepository,
	pricing *pricingapp.PricingService,
	promotion port.PromotionService,
	locker domain.ReservationLocker,
	publisher domain.EventPublisher,
	drafts domain.DraftStore,
	calendar domain.CalendarSync,
	bufferHours int,
	tracer trace.Tracer,
) *BookingService {
	return &BookingService{
		repo: repo, pricing: pricing, promotion: promotion,
		locker: locker, publisher: publisher, drafts: drafts,
		calendar: calendar, bufferHours: bufferHours,
		tracer: tracer, now: time.Now,
	}
}

// CheckAvailability 判断区间（含保洁缓冲）是否与已有预订冲突
func (s *BookingService) CheckAvailability(ctx context.Context, req *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error) {
	ctx, span := s.tracer.Start(ctx, "booking.CheckAvailability")
	defer span.End()

	if !req.StartsAt.Before(req.EndsAt) {
		span.RecordError(domain.ErrInvalidInterval)
		return nil, domain.ErrInvalidInterval
	}

	excludeID := uuid.Nil
	if req.ExcludeID != "" {
		parsed, err := uuid.Parse(req.ExcludeID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad exclude_id", domain.ErrInvalidInterval)
		}
		excludeID = parsed
	}

	existing, err := s.repo.FindOverlapping(ctx,
		req.StartsAt.Add(-overlapFetchPadding), req.EndsAt.Add(overlapFetchPadding), true)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	conflicts := domain.Conflicting(req.StartsAt, req.EndsAt, existing, s.bufferHours, excludeID)
	resp := &CheckAvailabilityResponse{Available: len(conflicts) == 0}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, c.ID.String())
	}

	outcome := "free"
	if !resp.Available {
		outcome = "conflict"
	}
	metrics.AvailabilityChecks.WithLabelValues(outcome).Inc()
	span.SetAttributes(attribute.Bool("booking.available", resp.Available))
	return resp, nil
}

// FreeSlotsForDay 返回给定日历日内可作为起止点的空闲时段
func (s *BookingService) FreeSlotsForDay(ctx context.Context, day time.Time, excludeID uuid.UUID) (*FreeSlotsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "booking.FreeSlotsForDay")
	defer span.End()

	existing, err := s.repo.FindByDay(ctx, day, excludeID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp := &FreeSlotsResponse{Day: day.Format("2006-01-02")}
	for _, slot := range domain.FreeSlots(day, existing, s.bufferHours, s.now()) {
		resp.Slots = append(resp.Slots, SlotView{
			Start: slot.Start.Format("15:04"),
			End:   slot.End.Format("15:04"),
		})
	}
	return resp, nil
}

// Quote 一次算出价格、促销折扣和预付金额。
// 资费的星期/时间窗限制在这里先挡掉，算不出价的请求不会走到促销服务。
func (s *BookingService) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	ctx, span := s.tracer.Start(ctx, "booking.Quote")
	defer span.End()

	started := s.now()
	defer func() { metrics.QuoteDuration.Observe(time.Since(started).Seconds()) }()

	avail, err := s.pricing.TariffAvailability(ctx, req.TariffID, req.StartsAt, req.EndsAt)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !avail.Available || !avail.IntervalAllowed {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, avail.Reason)
	}

	durationHours := int(math.Round(req.EndsAt.Sub(req.StartsAt).Hours()))
	addOns := pricingdomain.AddOns{
		Sauna:         req.Sauna,
		SecretRoom:    req.SecretRoom,
		SecondBedroom: req.SecondBedroom,
		Photoshoot:    req.Photoshoot,
	}
	breakdown, err := s.pricing.CalculatePrice(ctx, req.TariffID, addOns, req.Occupants, durationHours, req.StartsAt)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp := &QuoteResponse{
		TariffID:      breakdown.TariffID,
		DurationHours: durationHours,
		Base:          breakdown.Base,
		AddOns:        breakdown.AddOnTotals,
		Total:         breakdown.Total,
		OverrideRule:  breakdown.OverrideRule,
	}

	if req.PromoCode != "" {
		promo, err := s.promotion.ValidatePromocode(ctx, req.PromoCode, req.StartsAt, req.TariffID)
		if err != nil {
			// 促销服务不可达不挡报价，只是放弃折扣
			span.RecordError(err)
			logger.Ctx(ctx).Warn().Err(err).Str("code", req.PromoCode).Msg("promocode validation unavailable, quoting without discount")
		} else {
			resp.PromoCode = promo.Code
			resp.PromoReason = promo.Reason
			if promo.Valid {
				resp.PromoApplied = true
				resp.DiscountPercent = promo.DiscountPercent
				resp.Total = pricingdomain.Round2(resp.Total * (100 - promo.DiscountPercent) / 100)
			}
		}
	}

	prepay := s.pricing.CalculatePrepayment(ctx, resp.Total, req.StartsAt)
	resp.Prepayment = prepay.Amount
	resp.IsHoliday = prepay.IsHoliday
	resp.HolidayName = prepay.HolidayName

	span.SetAttributes(
		attribute.Float64("quote.total", resp.Total),
		attribute.Bool("quote.promo_applied", resp.PromoApplied),
	)
	return resp, nil
}

// CreateReservation 校验、报价并落库一条新预订。
// 冲突检查和写入放在同一把分布式锁里执行：并发请求串行通过临界区，
// 各自重新读取快照，后到者会看到先到者刚写入的预订。
func (s *BookingService) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*CreateReservationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "booking.CreateReservation")
	defer span.End()

	reservation := &domain.Reservation{
		ID:        uuid.New(),
		ClientID:  req.ChatID,
		TariffID:  req.TariffID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Occupants: req.Occupants,
		PromoCode: req.PromoCode,
		CreatedAt: s.now(),
	}
	if err := reservation.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	quote, err := s.Quote(ctx, &QuoteRequest{
		TariffID: req.TariffID, StartsAt: req.StartsAt, EndsAt: req.EndsAt,
		Occupants: req.Occupants, Sauna: req.Sauna, SecretRoom: req.SecretRoom,
		SecondBedroom: req.SecondBedroom, Photoshoot: req.Photoshoot,
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return nil, err
	}

	err = s.locker.WithLock(ctx, func() error {
		existing, err := s.repo.FindOverlapping(ctx,
			req.StartsAt.Add(-overlapFetchPadding), req.EndsAt.Add(overlapFetchPadding), true)
		if err != nil {
			return err
		}
		if domain.Conflicts(req.StartsAt, req.EndsAt, existing, s.bufferHours, uuid.Nil) {
			return domain.ErrIntervalConflict
		}
		return s.repo.Save(ctx, reservation)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reservation not created")
		return nil, err
	}

	metrics.ReservationsCreated.Inc()
	logger.Ctx(ctx).Info().
		Str("reservation_id", reservation.ID.String()).
		Str("tariff", reservation.TariffID).
		Time("starts_at", reservation.StartsAt).
		Float64("total", quote.Total).
		Msg("reservation created")

	event := &domain.ReservationEvent{
		Type:          domain.EventReservationCreated,
		ReservationID: reservation.ID,
		ClientID:      reservation.ClientID,
		TariffID:      reservation.TariffID,
		StartsAt:      reservation.StartsAt,
		EndsAt:        reservation.EndsAt,
		Total:         quote.Total,
		Prepayment:    quote.Prepayment,
		OccurredAt:    s.now(),
	}
	if err := s.publisher.PublishReservationEvent(ctx, event); err != nil {
		// 事件丢失只影响通知，预订本身已经落库
		logger.Ctx(ctx).Error().Err(err).Str("reservation_id", reservation.ID.String()).Msg("failed to publish reservation event")
	}
	if err := s.calendar.PushReservation(ctx, reservation); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("reservation_id", reservation.ID.String()).Msg("calendar sync failed")
	}
	if req.ChatID != "" {
		if err := s.drafts.Delete(ctx, req.ChatID); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("chat_id", req.ChatID).Msg("failed to discard draft")
		}
	}

	return &CreateReservationResponse{
		ReservationID: reservation.ID,
		Total:         quote.Total,
		Prepayment:    quote.Prepayment,
	}, nil
}

// CancelReservation 取消一条预订并广播取消事件
func (s *BookingService) CancelReservation(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "booking.CancelReservation")
	defer span.End()

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if reservation.Canceled {
		return nil
	}

	reservation.Canceled = true
	if err := s.repo.UpdateFlags(ctx, reservation); err != nil {
		span.RecordError(err)
		return err
	}

	event := &domain.ReservationEvent{
		Type:          domain.EventReservationCanceled,
		ReservationID: reservation.ID,
		ClientID:      reservation.ClientID,
		TariffID:      reservation.TariffID,
		StartsAt:      reservation.StartsAt,
		EndsAt:        reservation.EndsAt,
		OccurredAt:    s.now(),
	}
	if err := s.publisher.PublishReservationEvent(ctx, event); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("reservation_id", id.String()).Msg("failed to publish cancel event")
	}
	if err := s.calendar.RemoveReservation(ctx, id); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("reservation_id", id.String()).Msg("calendar removal failed")
	}

	logger.Ctx(ctx).Info().Str("reservation_id", id.String()).Msg("reservation canceled")
	return nil
}

// ValidatePromocode 把促销码校验透传给促销服务。
// 会话侧只跟预订服务打交道，不直接访问促销服务。
func (s *BookingService) ValidatePromocode(ctx context.Context, code string, reservationDate time.Time, tariffID string) (*port.PromoValidation, error) {
	ctx, span := s.tracer.Start(ctx, "booking.ValidatePromocode")
	defer span.End()
	return s.promotion.ValidatePromocode(ctx, code, reservationDate, tariffID)
}

// Draft 返回会话当前的预订草稿，没有则返回一份空白草稿
func (s *BookingService) Draft(ctx context.Context, chatID string) (*domain.Draft, error) {
	draft, err := s.drafts.Get(ctx, chatID)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return &domain.Draft{ChatID: chatID}, nil
	}
	return draft, err
}

// SaveDraft 保存会话的预订草稿
func (s *BookingService) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	draft.UpdatedAt = s.now()
	return s.drafts.Save(ctx, draft)
}
