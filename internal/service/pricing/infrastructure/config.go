// internal/service/pricing/infrastructure/config.go
package infrastructure

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"lodge/internal/service/pricing/domain"
)

const dateLayout = "2006-01-02"

// RateConfig 是一次性加载的全部定价配置。
// 进程启动时构建一次，之后只读，通过依赖注入传给各计算器。
type RateConfig struct {
	Catalog      *domain.Catalog
	DateRules    *domain.DateRuleSet
	HolidayRules *domain.HolidayRuleSet
	BufferHours  int
}

// 与 YAML 文件对应的中间结构；解析后立即转换并校验，
// 任何一条非法记录都会让整个加载失败。
type ratesFile struct {
	CleaningBufferHours int               `yaml:"cleaning_buffer_hours"`
	Tariffs             []tariffYAML      `yaml:"tariffs"`
	DateRules           []dateRuleYAML    `yaml:"date_rules"`
	HolidayRules        []holidayRuleYAML `yaml:"holiday_rules"`
}

type tariffYAML struct {
	ID                 string          `yaml:"id"`
	Name               string          `yaml:"name"`
	BaseHours          int             `yaml:"base_hours"`
	BasePrice          float64         `yaml:"base_price"`
	SaunaPrice         float64         `yaml:"sauna_price"`
	SecretRoomPrice    float64         `yaml:"secret_room_price"`
	SecondBedroomPrice float64         `yaml:"second_bedroom_price"`
	PhotoshootPrice    float64         `yaml:"photoshoot_price"`
	MaxOccupants       int             `yaml:"max_occupants"`
	ExtraOccupantPrice float64         `yaml:"extra_occupant_price"`
	ExtraHourPrice     float64         `yaml:"extra_hour_price"`
	DayPrices          map[int]float64 `yaml:"day_prices"`
	RestrictedHours    bool            `yaml:"restricted_hours"`
}

type dateRuleYAML struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	DateFrom string  `yaml:"date_from"`
	DateTo   string  `yaml:"date_to"`
	TimeFrom string  `yaml:"time_from"`
	TimeTo   string  `yaml:"time_to"`
	Price    float64 `yaml:"price"`
	Active   bool    `yaml:"active"`
}

type holidayRuleYAML struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Date      string  `yaml:"date"`
	Recurring bool    `yaml:"recurring"`
	Percent   float64 `yaml:"percent"`
	Active    bool    `yaml:"active"`
}

// LoadRateConfig 从 YAML 文件加载定价配置。
// 配置错误是致命的：这里返回的错误应当让启动中止，而不是被吞掉。
func LoadRateConfig(path string) (*RateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate config %s: %w", path, err)
	}

	var file ratesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rate config %s: %v: %w", path, err, domain.ErrBadConfig)
	}

	if len(file.Tariffs) == 0 {
		return nil, fmt.Errorf("rate config %s has no tariffs: %w", path, domain.ErrBadConfig)
	}
	if file.CleaningBufferHours < 0 {
		return nil, fmt.Errorf("negative cleaning buffer: %w", domain.ErrBadConfig)
	}
	if file.CleaningBufferHours == 0 {
		file.CleaningBufferHours = 2
	}

	tariffs := make([]domain.Tariff, 0, len(file.Tariffs))
	for _, t := range file.Tariffs {
		tariffs = append(tariffs, domain.Tariff{
			ID:                 t.ID,
			Name:               t.Name,
			BaseHours:          t.BaseHours,
			BasePrice:          t.BasePrice,
			SaunaPrice:         t.SaunaPrice,
			SecretRoomPrice:    t.SecretRoomPrice,
			SecondBedroomPrice: t.SecondBedroomPrice,
			PhotoshootPrice:    t.PhotoshootPrice,
			MaxOccupants:       t.MaxOccupants,
			ExtraOccupantPrice: t.ExtraOccupantPrice,
			ExtraHourPrice:     t.ExtraHourPrice,
			DayPrices:          t.DayPrices,
			RestrictedHours:    t.RestrictedHours,
		})
	}
	catalog, err := domain.NewCatalog(tariffs)
	if err != nil {
		return nil, err
	}

	dateRules := make([]domain.DateRule, 0, len(file.DateRules))
	for _, r := range file.DateRules {
		rule, err := toDateRule(r)
		if err != nil {
			return nil, err
		}
		dateRules = append(dateRules, rule)
	}
	dateRuleSet, err := domain.NewDateRuleSet(dateRules)
	if err != nil {
		return nil, err
	}

	holidayRules := make([]domain.HolidayRule, 0, len(file.HolidayRules))
	for _, r := range file.HolidayRules {
		rule, err := toHolidayRule(r)
		if err != nil {
			return nil, err
		}
		holidayRules = append(holidayRules, rule)
	}
	holidayRuleSet, err := domain.NewHolidayRuleSet(holidayRules)
	if err != nil {
		return nil, err
	}

	return &RateConfig{
		Catalog:      catalog,
		DateRules:    dateRuleSet,
		HolidayRules: holidayRuleSet,
		BufferHours:  file.CleaningBufferHours,
	}, nil
}

func toDateRule(r dateRuleYAML) (domain.DateRule, error) {
	rule := domain.DateRule{
		ID:     r.ID,
		Name:   r.Name,
		Price:  r.Price,
		Active: r.Active,
	}

	var err error
	if rule.From, err = parseDate(r.DateFrom, r.ID); err != nil {
		return rule, err
	}
	if rule.To, err = parseDate(r.DateTo, r.ID); err != nil {
		return rule, err
	}

	// 时间子区间可选，但必须成对出现
	if r.TimeFrom != "" || r.TimeTo != "" {
		if r.TimeFrom == "" || r.TimeTo == "" {
			return rule, fmt.Errorf("date rule %q: time window must set both ends: %w", r.ID, domain.ErrBadConfig)
		}
		from, err := domain.ParseTimeOfDay(r.TimeFrom)
		if err != nil {
			return rule, err
		}
		to, err := domain.ParseTimeOfDay(r.TimeTo)
		if err != nil {
			return rule, err
		}
		rule.WindowStart, rule.WindowEnd = &from, &to
	}
	return rule, nil
}

func toHolidayRule(r holidayRuleYAML) (domain.HolidayRule, error) {
	date, err := parseDate(r.Date, r.ID)
	if err != nil {
		return domain.HolidayRule{}, err
	}
	return domain.HolidayRule{
		ID:        r.ID,
		Name:      r.Name,
		Date:      date,
		Recurring: r.Recurring,
		Percent:   r.Percent,
		Active:    r.Active,
	}, nil
}

func parseDate(s, ruleID string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("rule %q: missing date: %w", ruleID, domain.ErrBadConfig)
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("rule %q: malformed date %q: %w", ruleID, s, domain.ErrBadConfig)
	}
	return d, nil
}
