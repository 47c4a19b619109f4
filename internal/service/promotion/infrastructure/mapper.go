package infrastructure

import (
	"strings"

	"github.com/google/uuid"

	"lodge/internal/service/promotion/domain"
)

// toDomainPromocode 将数据库模型转换为领域模型
func toDomainPromocode(model *PromocodeModel) (*domain.Promocode, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, err
	}

	var tariffIDs []string
	if model.TariffScope != "" {
		tariffIDs = strings.Split(model.TariffScope, ",")
	}

	return &domain.Promocode{
		ID:              id,
		Code:            model.Code,
		Name:            model.Name,
		Type:            domain.PromocodeType(model.Type),
		DiscountPercent: model.DiscountPercent,
		ValidFrom:       model.ValidFrom,
		ValidTo:         model.ValidTo,
		TariffIDs:       tariffIDs,
		Active:          model.Active,
		RuleExpr:        model.RuleExpr,
		CreatedAt:       model.CreatedAt,
	}, nil
}

// fromDomainPromocode 将领域模型转换为数据库模型
func fromDomainPromocode(p *domain.Promocode) *PromocodeModel {
	return &PromocodeModel{
		ID:              p.ID.String(),
		Code:            domain.NormalizeCode(p.Code),
		Name:            p.Name,
		Type:            string(p.Type),
		DiscountPercent: p.DiscountPercent,
		ValidFrom:       p.ValidFrom,
		ValidTo:         p.ValidTo,
		TariffScope:     strings.Join(p.TariffIDs, ","),
		Active:          p.Active,
		RuleExpr:        p.RuleExpr,
		CreatedAt:       p.CreatedAt,
	}
}
