package domain

import (
	"fmt"
	"sort"
)

// Tariff 是一个定价模板：基础时长与价格、各增值项价格、人数限制。
// 配置加载完成后不可变。
type Tariff struct {
	ID   string
	Name string

	// 基础计费：BaseHours 小时内收 BasePrice，超出部分按 ExtraHourPrice 计
	BaseHours int
	BasePrice float64

	// 增值项价格；为 0 表示该资费不提供此项
	SaunaPrice         float64
	SecretRoomPrice    float64
	SecondBedroomPrice float64
	PhotoshootPrice    float64

	// 人数限制：超过 MaxOccupants 的每人加收 ExtraOccupantPrice
	MaxOccupants       int
	ExtraOccupantPrice float64

	ExtraHourPrice float64

	// DayPrices 是整天数到固定价格的映射，仅日租类资费使用。
	// key 为整天数（1 天、2 天 ...），非日租资费该映射为空。
	DayPrices map[int]float64

	// RestrictedHours 标记该资费仅在限定的星期和时间窗内可用
	RestrictedHours bool
}

// IsDayBased 报告该资费是否按整天计费
func (t *Tariff) IsDayBased() bool {
	return len(t.DayPrices) > 0
}

// Validate 在加载阶段做快速失败的校验
func (t *Tariff) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tariff with empty id: %w", ErrBadConfig)
	}
	// 日租资费以 DayPrices 为计费单位，不要求 BaseHours
	if !t.IsDayBased() && t.BaseHours <= 0 {
		return fmt.Errorf("tariff %q: base hours must be positive: %w", t.ID, ErrBadConfig)
	}
	if t.BaseHours < 0 {
		return fmt.Errorf("tariff %q: negative base hours: %w", t.ID, ErrBadConfig)
	}
	if t.BasePrice < 0 || t.ExtraHourPrice < 0 || t.ExtraOccupantPrice < 0 {
		return fmt.Errorf("tariff %q: negative price: %w", t.ID, ErrBadConfig)
	}
	if t.SaunaPrice < 0 || t.SecretRoomPrice < 0 || t.SecondBedroomPrice < 0 || t.PhotoshootPrice < 0 {
		return fmt.Errorf("tariff %q: negative add-on price: %w", t.ID, ErrBadConfig)
	}
	if t.MaxOccupants <= 0 {
		return fmt.Errorf("tariff %q: max occupants must be positive: %w", t.ID, ErrBadConfig)
	}
	for days, price := range t.DayPrices {
		if days <= 0 || price < 0 {
			return fmt.Errorf("tariff %q: malformed day price entry %d=%v: %w", t.ID, days, price, ErrBadConfig)
		}
	}
	return nil
}

// Catalog 是资费目录，从配置加载一次后只读
type Catalog struct {
	tariffs map[string]Tariff
	order   []string
}

// NewCatalog 构建资费目录；任何一条资费非法都会让整个加载失败
func NewCatalog(tariffs []Tariff) (*Catalog, error) {
	c := &Catalog{tariffs: make(map[string]Tariff, len(tariffs))}
	for i := range tariffs {
		t := tariffs[i]
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.tariffs[t.ID]; exists {
			return nil, fmt.Errorf("duplicate tariff id %q: %w", t.ID, ErrBadConfig)
		}
		c.tariffs[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	sort.Strings(c.order)
	return c, nil
}

// Get 按标识查找资费
func (c *Catalog) Get(id string) (*Tariff, error) {
	t, ok := c.tariffs[id]
	if !ok {
		return nil, fmt.Errorf("tariff %q: %w", id, ErrTariffNotFound)
	}
	return &t, nil
}

// All 按标识顺序返回全部资费，供展示层渲染选择列表
func (c *Catalog) All() []Tariff {
	out := make([]Tariff, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.tariffs[id])
	}
	return out
}
