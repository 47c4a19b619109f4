package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFreeSlotsEmptyDay(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) // день в будущем

	got := FreeSlots(day, nil, 2, now)
	if len(got) != 1 {
		t.Fatalf("FreeSlots = %v, want a single full-day range", got)
	}
	if !got[0].Start.Equal(atHour(day, 0, 0)) {
		t.Errorf("range start = %v, want midnight", got[0].Start)
	}
	if !got[0].End.Equal(atHour(day, 23, 59)) {
		t.Errorf("range end = %v, want 23:59", got[0].End)
	}
}

func TestFreeSlotsExcludesBufferedBusyIntervals(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	existing := []Reservation{
		reservation(uuid.New(), atHour(day, 12, 0), atHour(day, 16, 0)),
	}

	got := FreeSlots(day, existing, 2, now)
	if len(got) != 2 {
		t.Fatalf("FreeSlots = %v, want two ranges around the busy interval", got)
	}

	// 缓冲 2 小时：繁忙区间扩展为 (10:00, 18:00)，整点 10:00 和 18:00 仍可选
	if !got[0].Start.Equal(atHour(day, 0, 0)) || !got[0].End.Equal(atHour(day, 10, 0)) {
		t.Errorf("morning range = %v, want [00:00, 10:00]", got[0])
	}
	if !got[1].Start.Equal(atHour(day, 18, 0)) || !got[1].End.Equal(atHour(day, 23, 59)) {
		t.Errorf("evening range = %v, want [18:00, 23:59]", got[1])
	}

	// 任何空闲时刻都不得落在缓冲后的繁忙区间内
	buffer := 2 * time.Hour
	for _, r := range got {
		for _, instant := range []time.Time{r.Start, r.End} {
			if busyAt(instant, existing, buffer) {
				t.Errorf("free instant %v falls inside a buffered busy interval", instant)
			}
		}
	}
}

func TestFreeSlotsIgnoresCanceled(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	canceled := reservation(uuid.New(), atHour(day, 12, 0), atHour(day, 16, 0))
	canceled.Canceled = true

	got := FreeSlots(day, []Reservation{canceled}, 2, now)
	if len(got) != 1 {
		t.Fatalf("FreeSlots = %v, want full day when the only reservation is canceled", got)
	}
}

func TestFreeSlotsToday(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)

	got := FreeSlots(day, nil, 2, now)
	if len(got) != 1 {
		t.Fatalf("FreeSlots = %v, want a single range", got)
	}
	// 今天从"当前小时 + 1"开始枚举
	if !got[0].Start.Equal(atHour(day, 15, 0)) {
		t.Errorf("range start = %v, want 15:00", got[0].Start)
	}
}

func TestFreeSlotsTodayLateEvening(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 10, 23, 10, 0, 0, time.UTC)

	if got := FreeSlots(day, nil, 2, now); len(got) != 0 {
		t.Errorf("FreeSlots at 23:xx today = %v, want empty", got)
	}
}

func TestTimeRangeString(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	r := TimeRange{Start: atHour(day, 9, 0), End: atHour(day, 23, 59)}
	if got := r.String(); got != "[09:00, 23:59]" {
		t.Errorf("String() = %q", got)
	}
}
