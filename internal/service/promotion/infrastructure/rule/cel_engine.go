package rule

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"lodge/internal/service/promotion/domain"
)

// CELRuleEngine 是 domain.RuleEngine 的 CEL 实现。
// 表达式按文本缓存编译结果，同一条促销码的规则只编译一次。
type CELRuleEngine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewCELRuleEngine 构造规则引擎，声明表达式可见的事实变量
func NewCELRuleEngine() (*CELRuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("tariff_id", cel.StringType),
		cel.Variable("date", cel.TimestampType),
		cel.Variable("weekday", cel.IntType),
		cel.Variable("occupants", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}
	return &CELRuleEngine{env: env, programs: make(map[string]cel.Program)}, nil
}

// Evaluate 实现了 domain.RuleEngine 接口
func (e *CELRuleEngine) Evaluate(ruleExpr string, fact domain.Fact) (bool, error) {
	program, err := e.compile(ruleExpr)
	if err != nil {
		return false, err
	}

	out, _, err := program.Eval(map[string]interface{}{
		"tariff_id": fact.TariffID,
		"date":      fact.Date,
		"weekday":   fact.Weekday,
		"occupants": fact.Occupants,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate rule: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q did not evaluate to a boolean", ruleExpr)
	}
	return result, nil
}

func (e *CELRuleEngine) compile(ruleExpr string) (cel.Program, error) {
	e.mu.RLock()
	program, hit := e.programs[ruleExpr]
	e.mu.RUnlock()
	if hit {
		return program, nil
	}

	ast, issues := e.env.Compile(ruleExpr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile rule %q: %w", ruleExpr, issues.Err())
	}
	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build rule program: %w", err)
	}

	e.mu.Lock()
	e.programs[ruleExpr] = program
	e.mu.Unlock()
	return program, nil
}
