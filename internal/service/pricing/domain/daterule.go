package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateRule 是日历日范围内的价格覆盖规则。
// 命中的规则完全取代资费的常规计价：覆盖价即整个入住的价格，
// 不再叠加超时费。
type DateRule struct {
	ID   string
	Name string

	// 规则生效的日历日范围，含两端
	From time.Time
	To   time.Time

	// 可选的时间子区间；两端必须同时设置，允许跨午夜
	WindowStart *TimeOfDay
	WindowEnd   *TimeOfDay

	Price  float64
	Active bool
}

// Validate 在加载阶段做快速失败的校验
func (r *DateRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("date rule with empty id: %w", ErrBadConfig)
	}
	if r.From.IsZero() || r.To.IsZero() {
		return fmt.Errorf("date rule %q: missing date range: %w", r.ID, ErrBadConfig)
	}
	if dateOf(r.From).After(dateOf(r.To)) {
		return fmt.Errorf("date rule %q: start date after end date: %w", r.ID, ErrBadConfig)
	}
	if (r.WindowStart == nil) != (r.WindowEnd == nil) {
		return fmt.Errorf("date rule %q: time window must set both ends: %w", r.ID, ErrBadConfig)
	}
	if r.Price < 0 {
		return fmt.Errorf("date rule %q: negative price: %w", r.ID, ErrBadConfig)
	}
	return nil
}

// AppliesTo 判断规则是否对给定时刻生效
func (r *DateRule) AppliesTo(at time.Time) bool {
	if !r.Active {
		return false
	}
	d := dateOf(at)
	if d.Before(dateOf(r.From)) || d.After(dateOf(r.To)) {
		return false
	}
	if r.WindowStart != nil {
		return withinWindow(timeOfDayOf(at), *r.WindowStart, *r.WindowEnd)
	}
	return true
}

// DateRuleSet 持有全部日期价格规则，加载一次后只读
type DateRuleSet struct {
	rules []DateRule
}

// NewDateRuleSet 构建规则集；任何一条规则非法都会让整个加载失败
func NewDateRuleSet(rules []DateRule) (*DateRuleSet, error) {
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			return nil, err
		}
	}
	rs := &DateRuleSet{rules: make([]DateRule, len(rules))}
	copy(rs.rules, rules)
	return rs, nil
}

// Effective 返回对给定时刻生效的规则，没有则返回 nil。
// 多条规则同时命中时按标识字符串排序取第一条。
// 这只是一个确定性的平局裁决，不代表语义上的优先级。
func (s *DateRuleSet) Effective(at time.Time) *DateRule {
	var matched []*DateRule
	for i := range s.rules {
		if s.rules[i].AppliesTo(at) {
			matched = append(matched, &s.rules[i])
		}
	}
	if len(matched) == 0 {
		return nil
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched[0]
}
