package domain

import (
	"testing"
	"time"
)

func restrictedTariff() *Tariff {
	return &Tariff{
		ID:              "econom",
		Name:            "Эконом",
		BaseHours:       9,
		BasePrice:       500,
		MaxOccupants:    2,
		RestrictedHours: true,
	}
}

func TestRestrictedTariffWeekdays(t *testing.T) {
	tariff := restrictedTariff()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"monday", time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), true},
		{"tuesday", time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), true},
		{"thursday", time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), true},
		{"friday", time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC), false},
		{"saturday", time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tariff.IsAvailableOn(tt.date); got != tt.want {
				t.Errorf("IsAvailableOn(%v) = %v, want %v", tt.date.Weekday(), got, tt.want)
			}
		})
	}

	unrestricted := Tariff{ID: "day", BaseHours: 24, MaxOccupants: 4}
	if !unrestricted.IsAvailableOn(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)) {
		t.Error("unrestricted tariff must be available on saturday")
	}
}

func TestRestrictedTariffIntervals(t *testing.T) {
	tariff := restrictedTariff()
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC) // вторник

	at := func(d time.Time, h int) time.Time {
		return d.Add(time.Duration(h) * time.Hour)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"day window 11-19", at(day, 11), at(day, 19), true},
		{"full day window 11-20", at(day, 11), at(day, 20), true},
		{"night window across midnight 22-08", at(day, 22), at(day.AddDate(0, 0, 1), 8), true},
		{"night window 23-09", at(day, 23), at(day.AddDate(0, 0, 1), 9), true},
		{"straddles both windows 09-23", at(day, 9), at(day, 23), false},
		{"starts before day window", at(day, 10), at(day, 15), false},
		{"ends after day window", at(day, 12), at(day, 21), false},
		{"wraps a full day back into window", at(day, 12), at(day.AddDate(0, 0, 1), 13), false},
		{"empty interval", at(day, 12), at(day, 12), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tariff.AllowsInterval(tt.start, tt.end); got != tt.want {
				t.Errorf("AllowsInterval(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}

	unrestricted := Tariff{ID: "day", BaseHours: 24, MaxOccupants: 4}
	if !unrestricted.AllowsInterval(at(day, 9), at(day, 23)) {
		t.Error("unrestricted tariff must allow any interval")
	}
}
