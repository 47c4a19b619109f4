package domain

import (
	"errors"
	"testing"
	"time"
)

func tod(h, m int) *TimeOfDay {
	return &TimeOfDay{Hour: h, Minute: m}
}

func TestDateRuleApplies(t *testing.T) {
	rule := DateRule{
		ID:     "ny",
		Name:   "New Year",
		From:   time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Price:  2000,
		Active: true,
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside range", time.Date(2025, 12, 31, 15, 0, 0, 0, time.UTC), true},
		{"first day inclusive", time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC), true},
		{"last day inclusive", time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC), true},
		{"before range", time.Date(2025, 12, 29, 23, 59, 0, 0, time.UTC), false},
		{"after range", time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.AppliesTo(tt.at); got != tt.want {
				t.Errorf("AppliesTo(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}

	rule.Active = false
	if rule.AppliesTo(time.Date(2025, 12, 31, 15, 0, 0, 0, time.UTC)) {
		t.Error("inactive rule must not apply")
	}
}

func TestDateRuleTimeWindowWrapsMidnight(t *testing.T) {
	rule := DateRule{
		ID:          "night",
		Name:        "Night special",
		From:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		WindowStart: tod(22, 0),
		WindowEnd:   tod(6, 0),
		Price:       500,
		Active:      true,
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"late evening", time.Date(2026, 2, 10, 23, 0, 0, 0, time.UTC), true},
		{"early morning", time.Date(2026, 2, 10, 5, 30, 0, 0, time.UTC), true},
		{"window start", time.Date(2026, 2, 10, 22, 0, 0, 0, time.UTC), true},
		{"window end", time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC), true},
		{"afternoon outside", time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.AppliesTo(tt.at); got != tt.want {
				t.Errorf("AppliesTo(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDateRuleSetTieBreakByID(t *testing.T) {
	day := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rules, err := NewDateRuleSet([]DateRule{
		{ID: "b-rule", Name: "B", From: dateOf(day), To: dateOf(day), Price: 900, Active: true},
		{ID: "a-rule", Name: "A", From: dateOf(day), To: dateOf(day), Price: 1100, Active: true},
	})
	if err != nil {
		t.Fatalf("NewDateRuleSet: %v", err)
	}

	// 多条命中时按标识字符串排序取第一条
	got := rules.Effective(day)
	if got == nil || got.ID != "a-rule" {
		t.Fatalf("Effective = %+v, want a-rule", got)
	}
}

func TestDateRuleSetNoMatch(t *testing.T) {
	rules, err := NewDateRuleSet(nil)
	if err != nil {
		t.Fatalf("NewDateRuleSet: %v", err)
	}
	if got := rules.Effective(time.Now()); got != nil {
		t.Errorf("Effective on empty set = %+v, want nil", got)
	}
}

func TestDateRuleValidation(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rule DateRule
	}{
		{"empty id", DateRule{From: day, To: day}},
		{"missing dates", DateRule{ID: "x"}},
		{"start after end", DateRule{ID: "x", From: day.AddDate(0, 0, 1), To: day}},
		{"half-open window", DateRule{ID: "x", From: day, To: day, WindowStart: tod(10, 0)}},
		{"negative price", DateRule{ID: "x", From: day, To: day, Price: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDateRuleSet([]DateRule{tt.rule}); !errors.Is(err, ErrBadConfig) {
				t.Errorf("err = %v, want ErrBadConfig", err)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	good, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if good.Hour != 9 || good.Minute != 30 {
		t.Errorf("parsed = %+v, want 09:30", good)
	}

	for _, bad := range []string{"", "25:00", "12:70", "12", "ab:cd"} {
		if _, err := ParseTimeOfDay(bad); !errors.Is(err, ErrBadConfig) {
			t.Errorf("ParseTimeOfDay(%q): err = %v, want ErrBadConfig", bad, err)
		}
	}
}
