package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultPrepaymentPercent 是没有节日规则命中时的预付比例
const DefaultPrepaymentPercent = 50.0

// HolidayRule 是节日预付比例规则：指定日期（或每年重复的月-日）
// 需要预付总价的 Percent 百分比，节日通常配置为 100。
type HolidayRule struct {
	ID   string
	Name string

	// Date 为规则日期；Recurring 为 true 时只匹配月和日，每年重复
	Date      time.Time
	Recurring bool

	Percent float64 // 0–100
	Active  bool
}

// Validate 在加载阶段做快速失败的校验
func (r *HolidayRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("holiday rule with empty id: %w", ErrBadConfig)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("holiday rule %q: missing date: %w", r.ID, ErrBadConfig)
	}
	if r.Percent < 0 || r.Percent > 100 {
		return fmt.Errorf("holiday rule %q: percent %v out of range: %w", r.ID, r.Percent, ErrBadConfig)
	}
	return nil
}

// Matches 判断规则是否匹配给定日期
func (r *HolidayRule) Matches(date time.Time) bool {
	if !r.Active {
		return false
	}
	if r.Recurring {
		return r.Date.Month() == date.Month() && r.Date.Day() == date.Day()
	}
	return sameCalendarDate(r.Date, date)
}

// HolidayRuleSet 持有全部节日预付规则，加载一次后只读
type HolidayRuleSet struct {
	rules []HolidayRule
}

// NewHolidayRuleSet 构建规则集；任何一条规则非法都会让整个加载失败
func NewHolidayRuleSet(rules []HolidayRule) (*HolidayRuleSet, error) {
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			return nil, err
		}
	}
	rs := &HolidayRuleSet{rules: make([]HolidayRule, len(rules))}
	copy(rs.rules, rules)
	return rs, nil
}

// Effective 返回匹配给定日期的规则，没有则返回 nil。
// 平局裁决与日期价格规则一致：按标识字符串排序取第一条。
func (s *HolidayRuleSet) Effective(date time.Time) *HolidayRule {
	var matched []*HolidayRule
	for i := range s.rules {
		if s.rules[i].Matches(date) {
			matched = append(matched, &s.rules[i])
		}
	}
	if len(matched) == 0 {
		return nil
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched[0]
}

// Prepayment 计算给定日期入住需要预付的金额，保留两位小数
func (s *HolidayRuleSet) Prepayment(totalPrice float64, date time.Time) float64 {
	percent := DefaultPrepaymentPercent
	if rule := s.Effective(date); rule != nil {
		percent = rule.Percent
	}
	return Round2(totalPrice * percent / 100)
}

// IsHoliday 报告给定日期是否命中节日规则
func (s *HolidayRuleSet) IsHoliday(date time.Time) bool {
	return s.Effective(date) != nil
}

// HolidayName 返回命中节日的展示名，未命中返回空串
func (s *HolidayRuleSet) HolidayName(date time.Time) string {
	if rule := s.Effective(date); rule != nil {
		return rule.Name
	}
	return ""
}

// Round2 按 IEEE-754 默认的"四舍六入五成双"保留两位小数
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
