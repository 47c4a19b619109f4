package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog([]Tariff{
		{
			ID:                 "day",
			Name:               "Сутки",
			BaseHours:          24,
			BasePrice:          700,
			SaunaPrice:         100,
			SecretRoomPrice:    150,
			SecondBedroomPrice: 200,
			PhotoshootPrice:    100,
			MaxOccupants:       4,
			ExtraOccupantPrice: 100,
			ExtraHourPrice:     50,
			DayPrices:          map[int]float64{1: 700, 2: 1300, 3: 1800},
		},
		{
			ID:                 "hourly",
			Name:               "Почасовой",
			BaseHours:          3,
			BasePrice:          300,
			SaunaPrice:         100,
			MaxOccupants:       2,
			ExtraOccupantPrice: 50,
			ExtraHourPrice:     80,
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return catalog
}

func emptyRules(t *testing.T) *DateRuleSet {
	t.Helper()
	rs, err := NewDateRuleSet(nil)
	if err != nil {
		t.Fatalf("NewDateRuleSet: %v", err)
	}
	return rs
}

func TestCalculateDayTariff(t *testing.T) {
	calc := NewCalculator(testCatalog(t), emptyRules(t))
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		addOns   AddOns
		occ      int
		hours    int
		total    float64
		extraHrs float64
	}{
		{name: "one day base", occ: 2, hours: 24, total: 700},
		{name: "sauna and photoshoot", addOns: AddOns{Sauna: true, Photoshoot: true}, occ: 2, hours: 24, total: 900},
		{name: "two days fixed price", occ: 2, hours: 48, total: 1300},
		{name: "remainder under cutoff billed hourly", occ: 2, hours: 38, total: 1400, extraHrs: 700},
		{name: "remainder over cutoff rounds to full day", occ: 2, hours: 40, total: 1300},
		{name: "extra occupants", occ: 6, hours: 24, total: 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.Calculate("day", tt.addOns, tt.occ, tt.hours, date)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if !approxEqual(b.Total, tt.total) {
				t.Errorf("total = %v, want %v", b.Total, tt.total)
			}
			if !approxEqual(b.ExtraHoursFee, tt.extraHrs) {
				t.Errorf("extra hours fee = %v, want %v", b.ExtraHoursFee, tt.extraHrs)
			}
		})
	}
}

func TestCalculateHourlyTariff(t *testing.T) {
	calc := NewCalculator(testCatalog(t), emptyRules(t))
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	b, err := calc.Calculate("hourly", AddOns{}, 1, 5, date)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 300 基础 + 2 小时 × 80 超时
	if !approxEqual(b.Total, 460) {
		t.Errorf("total = %v, want 460", b.Total)
	}
	if !approxEqual(b.ExtraHoursFee, 160) {
		t.Errorf("extra hours fee = %v, want 160", b.ExtraHoursFee)
	}
}

func TestCalculateDateOverride(t *testing.T) {
	rules, err := NewDateRuleSet([]DateRule{
		{
			ID:     "christmas",
			Name:   "Christmas",
			From:   time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			To:     time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			Price:  1500,
			Active: true,
		},
	})
	if err != nil {
		t.Fatalf("NewDateRuleSet: %v", err)
	}
	calc := NewCalculator(testCatalog(t), rules)

	b, err := calc.Calculate("day", AddOns{}, 2, 24, time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !approxEqual(b.Total, 1500) {
		t.Errorf("total = %v, want 1500 (override replaces tariff price)", b.Total)
	}
	if b.OverrideRule != "Christmas" {
		t.Errorf("override rule = %q, want Christmas", b.OverrideRule)
	}
	if b.ExtraHoursFee != 0 {
		t.Errorf("extra hours fee = %v, want 0 under override", b.ExtraHoursFee)
	}

	// 增值项仍然叠加在覆盖价之上
	b, err = calc.Calculate("day", AddOns{Sauna: true}, 2, 24, time.Date(2024, 12, 25, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !approxEqual(b.Total, 1600) {
		t.Errorf("total with sauna = %v, want 1600", b.Total)
	}
}

func TestCalculateMonotonic(t *testing.T) {
	calc := NewCalculator(testCatalog(t), emptyRules(t))
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	base, err := calc.Calculate("hourly", AddOns{}, 1, 3, date)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	longer, _ := calc.Calculate("hourly", AddOns{}, 1, 6, date)
	crowded, _ := calc.Calculate("hourly", AddOns{}, 5, 3, date)
	withSauna, _ := calc.Calculate("hourly", AddOns{Sauna: true}, 1, 3, date)

	if longer.Total < base.Total {
		t.Errorf("longer stay cheaper: %v < %v", longer.Total, base.Total)
	}
	if crowded.Total < base.Total {
		t.Errorf("more occupants cheaper: %v < %v", crowded.Total, base.Total)
	}
	if withSauna.Total < base.Total {
		t.Errorf("add-on made it cheaper: %v < %v", withSauna.Total, base.Total)
	}
}

func TestCalculateRejectsBadInput(t *testing.T) {
	calc := NewCalculator(testCatalog(t), emptyRules(t))
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	if _, err := calc.Calculate("hourly", AddOns{}, 1, 0, date); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: err = %v, want ErrInvalidDuration", err)
	}
	if _, err := calc.Calculate("hourly", AddOns{}, -1, 3, date); !errors.Is(err, ErrInvalidOccupancy) {
		t.Errorf("negative occupancy: err = %v, want ErrInvalidOccupancy", err)
	}
	if _, err := calc.Calculate("no-such", AddOns{}, 1, 3, date); !errors.Is(err, ErrTariffNotFound) {
		t.Errorf("unknown tariff: err = %v, want ErrTariffNotFound", err)
	}
	// 日价表缺口必须报配置错误，而不是静默给出错误价格
	if _, err := calc.Calculate("day", AddOns{}, 1, 24*10, date); !errors.Is(err, ErrBadConfig) {
		t.Errorf("missing day price: err = %v, want ErrBadConfig", err)
	}
}

func TestBreakdownCategories(t *testing.T) {
	calc := NewCalculator(testCatalog(t), emptyRules(t))
	date := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	b, err := calc.Calculate("hourly", AddOns{Sauna: true}, 4, 5, date)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	got := b.Categories()
	want := []string{"base", "extra_hours", "sauna", "extra_occupants"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		tariff Tariff
	}{
		{"empty id", Tariff{BaseHours: 1, MaxOccupants: 1}},
		{"negative price", Tariff{ID: "x", BaseHours: 1, MaxOccupants: 1, BasePrice: -1}},
		{"zero base hours", Tariff{ID: "x", MaxOccupants: 1}},
		{"negative base hours day based", Tariff{ID: "x", MaxOccupants: 1, BaseHours: -1, DayPrices: map[int]float64{1: 700}}},
		{"zero max occupants", Tariff{ID: "x", BaseHours: 1}},
		{"bad day price key", Tariff{ID: "x", BaseHours: 1, MaxOccupants: 1, DayPrices: map[int]float64{0: 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog([]Tariff{tt.tariff}); !errors.Is(err, ErrBadConfig) {
				t.Errorf("err = %v, want ErrBadConfig", err)
			}
		})
	}

	ok := Tariff{ID: "x", BaseHours: 1, MaxOccupants: 1}
	if _, err := NewCatalog([]Tariff{ok, ok}); !errors.Is(err, ErrBadConfig) {
		t.Errorf("duplicate id: err = %v, want ErrBadConfig", err)
	}

	// 日租资费可以只配置 DayPrices
	dayOnly := Tariff{ID: "d", MaxOccupants: 4, DayPrices: map[int]float64{1: 700, 2: 1300}}
	if _, err := NewCatalog([]Tariff{dayOnly}); err != nil {
		t.Errorf("day based tariff without base hours: err = %v, want nil", err)
	}
}
