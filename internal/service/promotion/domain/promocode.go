package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PromocodeType 定义了促销码有效期的两种语义
type PromocodeType string

const (
	// TypeBookingDates 约束的是入住日期：只要预订落在有效期内，
	// 无论什么时候申请都有效
	TypeBookingDates PromocodeType = "BOOKING_DATES"
	// TypeUsagePeriod 约束的是申请时刻：必须在有效期内使用，
	// 入住日期可以在之后（但不能太远）
	TypeUsagePeriod PromocodeType = "USAGE_PERIOD"
)

// USAGE_PERIOD 类型允许的入住日期最远提前量
const LookAheadMonths = 3

// Promocode 是一条促销码定义。Code 统一大写存储和比较。
type Promocode struct {
	ID              uuid.UUID
	Code            string
	Name            string
	Type            PromocodeType
	DiscountPercent float64
	ValidFrom       time.Time
	ValidTo         time.Time

	// TariffIDs 为空表示对所有资费生效
	TariffIDs []string
	Active    bool

	// RuleExpr 是可选的附加条件表达式，由规则引擎在应用层求值
	RuleExpr  string
	CreatedAt time.Time
}

// NormalizeCode 把用户输入的促销码规整为存储形式
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateDefinition 在促销码入库前拒绝畸形定义
func (p *Promocode) ValidateDefinition() error {
	if NormalizeCode(p.Code) == "" {
		return ErrInvalidPromocode
	}
	if p.Type != TypeBookingDates && p.Type != TypeUsagePeriod {
		return ErrInvalidPromocode
	}
	if p.DiscountPercent <= 0 || p.DiscountPercent > 100 {
		return ErrInvalidPromocode
	}
	if p.ValidTo.Before(p.ValidFrom) {
		return ErrInvalidPromocode
	}
	return nil
}

// ValidationResult 是一次促销码校验的结论。
// Valid 为 false 时 Reason 给出面向用户的拒绝原因。
type ValidationResult struct {
	Valid     bool
	Reason    string
	Promocode *Promocode
}

func rejected(p *Promocode, reason string) *ValidationResult {
	return &ValidationResult{Valid: false, Reason: reason, Promocode: p}
}

// Validate 按类型语义校验促销码对一次预订是否生效。
// now 是"用户此刻申请促销码"的时间，reservationDate 是入住开始日期。
func (p *Promocode) Validate(reservationDate time.Time, tariffID string, now time.Time) *ValidationResult {
	if !p.Active {
		return rejected(p, "promocode is no longer active")
	}
	if !p.appliesTo(tariffID) {
		return rejected(p, "promocode does not apply to the selected tariff")
	}

	switch p.Type {
	case TypeBookingDates:
		if reservationDate.Before(p.ValidFrom) || reservationDate.After(p.ValidTo) {
			return rejected(p, "promocode is not valid for these booking dates")
		}
	case TypeUsagePeriod:
		if now.Before(p.ValidFrom) {
			return rejected(p, "promocode is not active yet")
		}
		if now.After(p.ValidTo) {
			return rejected(p, "promocode has expired")
		}
		if reservationDate.After(now.AddDate(0, LookAheadMonths, 0)) {
			return rejected(p, "booking date is too far ahead for this promocode")
		}
	default:
		return rejected(p, "unknown promocode type")
	}

	return &ValidationResult{Valid: true, Promocode: p}
}

func (p *Promocode) appliesTo(tariffID string) bool {
	if len(p.TariffIDs) == 0 {
		return true
	}
	for _, id := range p.TariffIDs {
		if id == tariffID {
			return true
		}
	}
	return false
}
