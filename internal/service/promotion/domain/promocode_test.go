package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usagePeriodCode() *Promocode {
	return &Promocode{
		ID:              uuid.New(),
		Code:            "WINTER25",
		Type:            TypeUsagePeriod,
		DiscountPercent: 25,
		ValidFrom:       date(2026, time.January, 1),
		ValidTo:         date(2026, time.January, 31),
		Active:          true,
	}
}

func bookingDatesCode() *Promocode {
	return &Promocode{
		ID:              uuid.New(),
		Code:            "MARCH10",
		Type:            TypeBookingDates,
		DiscountPercent: 10,
		ValidFrom:       date(2026, time.March, 1),
		ValidTo:         date(2026, time.March, 31),
		Active:          true,
	}
}

func TestValidateUsagePeriod(t *testing.T) {
	promo := usagePeriodCode()

	tests := []struct {
		name            string
		now             time.Time
		reservationDate time.Time
		wantValid       bool
	}{
		{
			name:            "used within period for a later stay",
			now:             date(2026, time.January, 15),
			reservationDate: date(2026, time.February, 10),
			wantValid:       true,
		},
		{
			name:            "used after the period expired",
			now:             date(2026, time.June, 1),
			reservationDate: date(2026, time.June, 10),
			wantValid:       false,
		},
		{
			name:            "used before the period started",
			now:             date(2025, time.December, 20),
			reservationDate: date(2026, time.January, 10),
			wantValid:       false,
		},
		{
			name:            "stay beyond the look-ahead horizon",
			now:             date(2026, time.January, 15),
			reservationDate: date(2026, time.May, 1),
			wantValid:       false,
		},
		{
			name:            "stay exactly at the look-ahead horizon",
			now:             date(2026, time.January, 15),
			reservationDate: date(2026, time.April, 15),
			wantValid:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := promo.Validate(tt.reservationDate, "day", tt.now)
			if got.Valid != tt.wantValid {
				t.Errorf("Validate() valid = %v (reason %q), want %v", got.Valid, got.Reason, tt.wantValid)
			}
			if !got.Valid && got.Reason == "" {
				t.Error("rejected validation must carry a reason")
			}
		})
	}
}

func TestValidateBookingDates(t *testing.T) {
	promo := bookingDatesCode()

	// 申请时刻无关紧要，只看入住日期
	now := date(2026, time.July, 1)
	if got := promo.Validate(date(2026, time.March, 15), "day", now); !got.Valid {
		t.Errorf("stay inside the range should be valid, got reason %q", got.Reason)
	}
	if got := promo.Validate(date(2026, time.April, 1), "day", now); got.Valid {
		t.Error("stay outside the range should be rejected")
	}
}

func TestValidateInactive(t *testing.T) {
	promo := bookingDatesCode()
	promo.Active = false

	got := promo.Validate(date(2026, time.March, 15), "day", date(2026, time.March, 1))
	if got.Valid {
		t.Error("inactive promocode should be rejected")
	}
}

func TestValidateTariffScope(t *testing.T) {
	promo := bookingDatesCode()
	promo.TariffIDs = []string{"day", "weekend"}

	now := date(2026, time.March, 1)
	if got := promo.Validate(date(2026, time.March, 15), "day", now); !got.Valid {
		t.Errorf("scoped tariff should be accepted, got reason %q", got.Reason)
	}
	if got := promo.Validate(date(2026, time.March, 15), "hourly", now); got.Valid {
		t.Error("out-of-scope tariff should be rejected")
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  winter25 "); got != "WINTER25" {
		t.Errorf("NormalizeCode = %q, want WINTER25", got)
	}
}

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Promocode)
		wantOK bool
	}{
		{"valid", func(p *Promocode) {}, true},
		{"empty code", func(p *Promocode) { p.Code = "  " }, false},
		{"unknown type", func(p *Promocode) { p.Type = "FOREVER" }, false},
		{"zero discount", func(p *Promocode) { p.DiscountPercent = 0 }, false},
		{"discount above 100", func(p *Promocode) { p.DiscountPercent = 120 }, false},
		{"inverted validity range", func(p *Promocode) { p.ValidFrom, p.ValidTo = p.ValidTo, p.ValidFrom }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := usagePeriodCode()
			tt.mutate(promo)
			err := promo.ValidateDefinition()
			if (err == nil) != tt.wantOK {
				t.Errorf("ValidateDefinition() error = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
