package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/metrics"
	"lodge/internal/service/pricing/domain"
	"lodge/internal/service/pricing/infrastructure"
)

// PricingService 定义了定价上下文提供的所有业务用例。
// 底层计算器都是纯函数，这一层负责追踪、日志和指标。
type PricingService struct {
	calculator   *domain.Calculator
	catalog      *domain.Catalog
	holidayRules *domain.HolidayRuleSet
	tracer       trace.Tracer
}

// NewPricingService 基于加载好的定价配置创建服务实例
func NewPricingService(cfg *infrastructure.RateConfig, tracer trace.Tracer) *PricingService {
	return &PricingService{
		calculator:   domain.NewCalculator(cfg.Catalog, cfg.DateRules),
		catalog:      cfg.Catalog,
		holidayRules: cfg.HolidayRules,
		tracer:       tracer,
	}
}

// CalculatePrice 计算一次预订的价格明细
func (s *PricingService) CalculatePrice(ctx context.Context, tariffID string, addOns domain.AddOns, occupants, durationHours int, date time.Time) (*domain.Breakdown, error) {
	ctx, span := s.tracer.Start(ctx, "pricing.CalculatePrice")
	defer span.End()

	span.SetAttributes(
		attribute.String("tariff.id", tariffID),
		attribute.Int("reservation.duration_hours", durationHours),
		attribute.Int("reservation.occupants", occupants),
	)

	breakdown, err := s.calculator.Calculate(tariffID, addOns, occupants, durationHours, date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.PriceCalculations.WithLabelValues(tariffID).Inc()
	if breakdown.OverrideRule != "" {
		logger.Ctx(ctx).Info().
			Str("tariff", tariffID).
			Str("rule", breakdown.OverrideRule).
			Float64("total", breakdown.Total).
			Msg("date pricing rule applied")
	}
	return breakdown, nil
}

// CalculatePrepayment 计算给定总价和入住日期的预付金额
func (s *PricingService) CalculatePrepayment(ctx context.Context, totalPrice float64, date time.Time) *PrepaymentResponse {
	_, span := s.tracer.Start(ctx, "pricing.CalculatePrepayment")
	defer span.End()

	amount := s.holidayRules.Prepayment(totalPrice, date)
	resp := &PrepaymentResponse{
		Amount:      amount,
		Percent:     domain.DefaultPrepaymentPercent,
		IsHoliday:   s.holidayRules.IsHoliday(date),
		HolidayName: s.holidayRules.HolidayName(date),
	}
	if rule := s.holidayRules.Effective(date); rule != nil {
		resp.Percent = rule.Percent
	}
	span.SetAttributes(attribute.Bool("prepayment.is_holiday", resp.IsHoliday))
	return resp
}

// TariffAvailability 校验资费的星期限制和时间窗限制
func (s *PricingService) TariffAvailability(ctx context.Context, tariffID string, start, end time.Time) (*TariffAvailabilityResponse, error) {
	_, span := s.tracer.Start(ctx, "pricing.TariffAvailability")
	defer span.End()

	tariff, err := s.catalog.Get(tariffID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp := &TariffAvailabilityResponse{
		Available:       tariff.IsAvailableOn(start),
		IntervalAllowed: tariff.AllowsInterval(start, end),
	}
	switch {
	case !resp.Available:
		resp.Reason = "tariff is not available on this weekday"
	case !resp.IntervalAllowed:
		resp.Reason = "interval is outside the allowed hours for this tariff"
	}
	return resp, nil
}

// Tariffs 返回全部资费，供展示层渲染选择列表
func (s *PricingService) Tariffs(ctx context.Context) []domain.Tariff {
	_, span := s.tracer.Start(ctx, "pricing.Tariffs")
	defer span.End()
	return s.catalog.All()
}
