package domain

import (
	"fmt"
	"time"
)

// AddOns 是一次预订勾选的增值项
type AddOns struct {
	Sauna         bool
	SecretRoom    bool
	SecondBedroom bool
	Photoshoot    bool
}

// 增值项在价格明细中的展示名
const (
	AddOnSauna         = "sauna"
	AddOnSecretRoom    = "secret_room"
	AddOnSecondBedroom = "second_bedroom"
	AddOnPhotoshoot    = "photoshoot"
)

// Breakdown 是一次计价的完整明细
type Breakdown struct {
	TariffID string

	// Base 是基础价：常规计价或日期规则的覆盖价
	Base float64
	// AddOnTotals 按增值项名记录各自的费用
	AddOnTotals map[string]float64
	// ExtraOccupantFee 是超员加价
	ExtraOccupantFee float64
	// ExtraHoursFee 是超出基础时长的加价；命中覆盖规则时恒为 0
	ExtraHoursFee float64

	Total float64

	// OverrideRule 是命中的日期价格规则名，空串表示按资费常规计价
	OverrideRule string
}

// Categories 返回明细中包含的费用类别，用于会话里的人类可读摘要。
// 只用于展示，不参与任何后续计算。
func (b *Breakdown) Categories() []string {
	categories := []string{"base"}
	if b.ExtraHoursFee > 0 {
		categories = append(categories, "extra_hours")
	}
	for _, name := range []string{AddOnSauna, AddOnSecretRoom, AddOnSecondBedroom, AddOnPhotoshoot} {
		if b.AddOnTotals[name] > 0 {
			categories = append(categories, name)
		}
	}
	if b.ExtraOccupantFee > 0 {
		categories = append(categories, "extra_occupants")
	}
	return categories
}

// Calculator 将资费目录、日期价格规则、增值项和人数合成为价格明细。
// 纯函数式组件：不做 I/O，不持有可变状态，可并发使用。
type Calculator struct {
	catalog   *Catalog
	dateRules *DateRuleSet
}

func NewCalculator(catalog *Catalog, dateRules *DateRuleSet) *Calculator {
	return &Calculator{catalog: catalog, dateRules: dateRules}
}

// Calculate 计算一次预订的价格明细。
// durationHours 为整小时时长，date 为入住开始时刻。
func (c *Calculator) Calculate(tariffID string, addOns AddOns, occupancy, durationHours int, date time.Time) (*Breakdown, error) {
	if durationHours <= 0 {
		return nil, fmt.Errorf("duration %d: %w", durationHours, ErrInvalidDuration)
	}
	if occupancy <= 0 {
		return nil, fmt.Errorf("occupancy %d: %w", occupancy, ErrInvalidOccupancy)
	}

	tariff, err := c.catalog.Get(tariffID)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{
		TariffID:    tariff.ID,
		AddOnTotals: make(map[string]float64),
	}

	// 1. 日期价格规则优先：覆盖价对整个入住时长有效，不再计超时费
	if rule := c.dateRules.Effective(date); rule != nil {
		b.Base = rule.Price
		b.OverrideRule = rule.Name
	} else if tariff.IsDayBased() {
		base, extraHours, err := dayBasedPrice(tariff, durationHours)
		if err != nil {
			return nil, err
		}
		b.Base = base
		b.ExtraHoursFee = extraHours
	} else {
		b.Base = tariff.BasePrice
		if extra := durationHours - tariff.BaseHours; extra > 0 {
			b.ExtraHoursFee = float64(extra) * tariff.ExtraHourPrice
		}
	}

	// 2. 增值项
	if addOns.Sauna && tariff.SaunaPrice > 0 {
		b.AddOnTotals[AddOnSauna] = tariff.SaunaPrice
	}
	if addOns.SecretRoom && tariff.SecretRoomPrice > 0 {
		b.AddOnTotals[AddOnSecretRoom] = tariff.SecretRoomPrice
	}
	if addOns.SecondBedroom && tariff.SecondBedroomPrice > 0 {
		b.AddOnTotals[AddOnSecondBedroom] = tariff.SecondBedroomPrice
	}
	if addOns.Photoshoot {
		b.AddOnTotals[AddOnPhotoshoot] = tariff.PhotoshootPrice
	}

	// 3. 超员加价
	if occupancy > tariff.MaxOccupants {
		b.ExtraOccupantFee = float64(occupancy-tariff.MaxOccupants) * tariff.ExtraOccupantPrice
	}

	b.Total = b.Base + b.ExtraHoursFee + b.ExtraOccupantFee
	for _, fee := range b.AddOnTotals {
		b.Total += fee
	}
	return b, nil
}

// dayBasedPrice 计算日租类资费的基础价。
// 余下的零头超过 15 小时按一整天计，否则按超时小时计费。
func dayBasedPrice(tariff *Tariff, durationHours int) (base, extraHours float64, err error) {
	totalDays := durationHours / 24
	remainder := durationHours % 24
	if remainder > 15 && remainder < 24 {
		totalDays++
		remainder = 0
	}

	price, ok := tariff.DayPrices[totalDays]
	if !ok {
		// 配置缺口不能静默退回到错误的价格
		return 0, 0, fmt.Errorf("tariff %q: no day price for %d days: %w", tariff.ID, totalDays, ErrBadConfig)
	}
	if remainder > 0 {
		extraHours = float64(remainder) * tariff.ExtraHourPrice
	}
	return price, extraHours, nil
}
