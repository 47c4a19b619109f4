package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/metrics"
	"lodge/internal/service/promotion/domain"
)

const dateLayout = "2006-01-02"

// PromotionService 编排促销码的校验和管理用例
type PromotionService struct {
	repo   domain.PromocodeRepository
	engine domain.RuleEngine
	tracer trace.Tracer
	now    func() time.Time
}

func NewPromotionService(repo domain.PromocodeRepository, engine domain.RuleEngine, tracer trace.Tracer) *PromotionService {
	return &PromotionService{repo: repo, engine: engine, tracer: tracer, now: time.Now}
}

// ValidatePromocode 校验促销码对一次预订是否生效。
// 找不到的码返回 valid=false 而不是错误：对调用方而言这是正常业务结论。
func (s *PromotionService) ValidatePromocode(ctx context.Context, req *ValidatePromocodeRequest) (*ValidatePromocodeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.ValidatePromocode")
	defer span.End()

	reservationDate, err := time.Parse(time.RFC3339, req.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("reservation_date must be RFC 3339: %w", err)
	}

	code := domain.NormalizeCode(req.Code)
	span.SetAttributes(attribute.String("promocode", code))

	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrPromocodeNotFound) {
			metrics.PromocodeValidations.WithLabelValues("rejected").Inc()
			return &ValidatePromocodeResponse{Valid: false, Reason: "promocode does not exist", Code: code}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	result := promo.Validate(reservationDate, req.TariffID, s.now())
	if result.Valid && promo.RuleExpr != "" {
		fact := domain.Fact{
			TariffID:  req.TariffID,
			Date:      reservationDate,
			Weekday:   int(reservationDate.Weekday()),
			Occupants: req.Occupants,
		}
		ok, err := s.engine.Evaluate(promo.RuleExpr, fact)
		if err != nil {
			// 规则写坏了不应奖励折扣，也不应放大为 5xx
			logger.Ctx(ctx).Error().Err(err).Str("code", code).Msg("promocode rule evaluation failed")
			ok = false
		}
		if !ok {
			result = &domain.ValidationResult{Valid: false, Reason: "promocode conditions are not met", Promocode: promo}
		}
	}

	outcome := "accepted"
	if !result.Valid {
		outcome = "rejected"
	}
	metrics.PromocodeValidations.WithLabelValues(outcome).Inc()

	resp := &ValidatePromocodeResponse{
		Valid:  result.Valid,
		Reason: result.Reason,
		Code:   promo.Code,
	}
	if result.Valid {
		resp.DiscountPercent = promo.DiscountPercent
	}
	return resp, nil
}

// CreatePromocode 创建一条新的促销码定义
func (s *PromotionService) CreatePromocode(ctx context.Context, req *CreatePromocodeRequest) (*PromocodeView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.CreatePromocode")
	defer span.End()

	validFrom, err := time.Parse(dateLayout, req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: bad valid_from", domain.ErrInvalidPromocode)
	}
	validTo, err := time.Parse(dateLayout, req.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("%w: bad valid_to", domain.ErrInvalidPromocode)
	}

	promo := &domain.Promocode{
		ID:              uuid.New(),
		Code:            domain.NormalizeCode(req.Code),
		Name:            req.Name,
		Type:            domain.PromocodeType(req.Type),
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       validFrom,
		ValidTo:         validTo,
		TariffIDs:       req.TariffIDs,
		Active:          true,
		RuleExpr:        req.RuleExpr,
		CreatedAt:       s.now(),
	}
	if err := promo.ValidateDefinition(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if promo.RuleExpr != "" {
		// 建码时就把表达式跑一遍，坏规则直接拒收
		if _, err := s.engine.Evaluate(promo.RuleExpr, domain.Fact{Date: validFrom}); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPromocode, err)
		}
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("code", promo.Code).Str("type", string(promo.Type)).Msg("promocode created")
	return toView(promo), nil
}

// DeactivatePromocode 停用一条促销码
func (s *PromotionService) DeactivatePromocode(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "promotion.DeactivatePromocode")
	defer span.End()

	if err := s.repo.Deactivate(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	logger.Ctx(ctx).Info().Str("promocode_id", id.String()).Msg("promocode deactivated")
	return nil
}

// ListPromocodes 返回所有仍在生效的促销码
func (s *PromotionService) ListPromocodes(ctx context.Context) ([]PromocodeView, error) {
	ctx, span := s.tracer.Start(ctx, "promotion.ListPromocodes")
	defer span.End()

	promos, err := s.repo.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	views := make([]PromocodeView, 0, len(promos))
	for i := range promos {
		views = append(views, *toView(&promos[i]))
	}
	return views, nil
}

func toView(p *domain.Promocode) *PromocodeView {
	return &PromocodeView{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Type:            string(p.Type),
		DiscountPercent: p.DiscountPercent,
		ValidFrom:       p.ValidFrom,
		ValidTo:         p.ValidTo,
		TariffIDs:       p.TariffIDs,
		Active:          p.Active,
	}
}
