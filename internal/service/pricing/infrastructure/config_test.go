package infrastructure

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lodge/internal/service/pricing/domain"
)

const goodConfig = `
cleaning_buffer_hours: 2
tariffs:
  - id: day
    name: "Сутки"
    base_hours: 24
    base_price: 700
    sauna_price: 100
    photoshoot_price: 100
    max_occupants: 4
    extra_occupant_price: 100
    extra_hour_price: 50
    day_prices:
      1: 700
      2: 1300
  - id: econom
    name: "Эконом"
    base_hours: 9
    base_price: 500
    max_occupants: 2
    extra_hour_price: 60
    restricted_hours: true
date_rules:
  - id: ny-2026
    name: "Новый год"
    date_from: "2025-12-31"
    date_to: "2026-01-02"
    price: 2500
    active: true
  - id: night-feb
    name: "Ночной тариф"
    date_from: "2026-02-01"
    date_to: "2026-02-28"
    time_from: "22:00"
    time_to: "06:00"
    price: 500
    active: true
holiday_rules:
  - id: new-year
    name: "Новый год"
    date: "2026-01-01"
    recurring: true
    percent: 100
    active: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRateConfig(t *testing.T) {
	cfg, err := LoadRateConfig(writeConfig(t, goodConfig))
	if err != nil {
		t.Fatalf("LoadRateConfig: %v", err)
	}

	if cfg.BufferHours != 2 {
		t.Errorf("BufferHours = %d, want 2", cfg.BufferHours)
	}

	day, err := cfg.Catalog.Get("day")
	if err != nil {
		t.Fatalf("Get(day): %v", err)
	}
	if day.DayPrices[2] != 1300 {
		t.Errorf("day price for 2 days = %v, want 1300", day.DayPrices[2])
	}

	econom, err := cfg.Catalog.Get("econom")
	if err != nil {
		t.Fatalf("Get(econom): %v", err)
	}
	if !econom.RestrictedHours {
		t.Error("econom tariff must carry restricted hours flag")
	}

	rule := cfg.DateRules.Effective(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	if rule == nil || rule.ID != "ny-2026" {
		t.Fatalf("Effective date rule = %+v, want ny-2026", rule)
	}

	night := cfg.DateRules.Effective(time.Date(2026, 2, 10, 23, 30, 0, 0, time.UTC))
	if night == nil || night.ID != "night-feb" {
		t.Fatalf("Effective night rule = %+v, want night-feb", night)
	}

	if !cfg.HolidayRules.IsHoliday(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("recurring holiday must match next year")
	}
}

func TestLoadRateConfigRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no tariffs", "tariffs: []"},
		{"bad yaml", "tariffs: ["},
		{
			"malformed date",
			`
tariffs:
  - id: day
    base_hours: 24
    max_occupants: 4
date_rules:
  - id: broken
    date_from: "31-12-2025"
    date_to: "2026-01-02"
    active: true
`,
		},
		{
			"half-open time window",
			`
tariffs:
  - id: day
    base_hours: 24
    max_occupants: 4
date_rules:
  - id: broken
    date_from: "2025-12-31"
    date_to: "2026-01-02"
    time_from: "22:00"
    active: true
`,
		},
		{
			"percent out of range",
			`
tariffs:
  - id: day
    base_hours: 24
    max_occupants: 4
holiday_rules:
  - id: broken
    date: "2026-01-01"
    percent: 150
    active: true
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRateConfig(writeConfig(t, tt.content)); !errors.Is(err, domain.ErrBadConfig) {
				t.Errorf("err = %v, want ErrBadConfig", err)
			}
		})
	}
}

func TestLoadRateConfigMissingFile(t *testing.T) {
	if _, err := LoadRateConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
