package domain

import (
	"errors"
	"testing"
	"time"
)

func holidayRules(t *testing.T) *HolidayRuleSet {
	t.Helper()
	rs, err := NewHolidayRuleSet([]HolidayRule{
		{
			ID:        "new-year",
			Name:      "Новый год",
			Date:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Recurring: true,
			Percent:   100,
			Active:    true,
		},
		{
			ID:      "city-day",
			Name:    "День города",
			Date:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			Percent: 70,
			Active:  true,
		},
	})
	if err != nil {
		t.Fatalf("NewHolidayRuleSet: %v", err)
	}
	return rs
}

func TestPrepayment(t *testing.T) {
	rules := holidayRules(t)

	tests := []struct {
		name  string
		total float64
		date  time.Time
		want  float64
	}{
		{"new year full prepayment", 1000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1000},
		{"regular day default half", 1000, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 500},
		{"rounding to two decimals", 333.33, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 166.66},
		{"exact holiday date", 2000, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), 1400},
		{"exact date next year misses", 2000, time.Date(2027, 9, 12, 0, 0, 0, 0, time.UTC), 1000},
		{"recurring matches next year", 800, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.Prepayment(tt.total, tt.date)
			if !approxEqual(got, tt.want) {
				t.Errorf("Prepayment(%v, %v) = %v, want %v", tt.total, tt.date, got, tt.want)
			}
			if got > tt.total {
				t.Errorf("prepayment %v exceeds total %v", got, tt.total)
			}
		})
	}
}

func TestIsHolidayAndName(t *testing.T) {
	rules := holidayRules(t)

	ny := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	if !rules.IsHoliday(ny) {
		t.Error("IsHoliday(new year) = false")
	}
	if name := rules.HolidayName(ny); name != "Новый год" {
		t.Errorf("HolidayName = %q", name)
	}

	regular := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	if rules.IsHoliday(regular) {
		t.Error("IsHoliday(regular day) = true")
	}
	if name := rules.HolidayName(regular); name != "" {
		t.Errorf("HolidayName on regular day = %q, want empty", name)
	}
}

func TestHolidayRuleValidation(t *testing.T) {
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rule HolidayRule
	}{
		{"empty id", HolidayRule{Date: date, Percent: 50}},
		{"missing date", HolidayRule{ID: "x", Percent: 50}},
		{"percent above 100", HolidayRule{ID: "x", Date: date, Percent: 120}},
		{"negative percent", HolidayRule{ID: "x", Date: date, Percent: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHolidayRuleSet([]HolidayRule{tt.rule}); !errors.Is(err, ErrBadConfig) {
				t.Errorf("err = %v, want ErrBadConfig", err)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{166.665, 166.66}, // 五成双
		{166.664, 166.66},
		{166.666, 166.67},
		{500, 500},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); !approxEqual(got, tt.want) {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
