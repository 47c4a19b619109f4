package domain

import "time"

// Fact 是规则表达式可见的预订事实
type Fact struct {
	TariffID  string    `json:"tariff_id"`
	Date      time.Time `json:"date"`
	Weekday   int       `json:"weekday"` // 0 = Sunday
	Occupants int       `json:"occupants"`
}

// RuleEngine 对促销码的附加条件表达式求值。
// 具体实现（表达式语言、编译缓存）属于基础设施层。
type RuleEngine interface {
	Evaluate(ruleExpr string, fact Fact) (bool, error)
}
