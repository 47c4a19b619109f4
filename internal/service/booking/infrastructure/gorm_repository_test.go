package infrastructure

import (
	"testing"
	"time"
)

func TestDayQueryWindow(t *testing.T) {
	day := time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC)

	from, to := dayQueryWindow(day, 2)

	wantFrom := time.Date(2026, 4, 9, 22, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 4, 11, 2, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}
	if !to.Equal(wantTo) {
		t.Errorf("to = %v, want %v", to, wantTo)
	}

	// 前一天 23:00 结束的预订，其清扫缓冲伸入当天，必须落入窗口
	prevDayEnd := time.Date(2026, 4, 9, 23, 0, 0, 0, time.UTC)
	if !prevDayEnd.After(from) {
		t.Errorf("reservation ending %v should satisfy ends_at > %v", prevDayEnd, from)
	}
}

func TestDayQueryWindowNoBuffer(t *testing.T) {
	day := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	from, to := dayQueryWindow(day, 0)

	if !from.Equal(day) {
		t.Errorf("from = %v, want %v", from, day)
	}
	if !to.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("to = %v, want %v", to, day.AddDate(0, 0, 1))
	}
}
