package domain

import (
	"fmt"
	"time"
)

// TimeRange 是一天内一段连续的空闲时间，用于在会话里展示可选时段
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start.Format("15:04"), r.End.Format("15:04"))
}

// FreeSlots 枚举给定日期内可作为预订起止点的空闲时段。
// 候选时刻按整点生成：从 0 点（当天是今天则从当前小时的下一个小时）
// 到 23 点，外加一个 23:59 的收尾时刻；落在任何加了保洁缓冲的
// 繁忙区间内的时刻被剔除，剩下的时刻按连续段合并成展示区间。
// 没有任何已有预订时整天都是空闲的。
func FreeSlots(day time.Time, existing []Reservation, bufferHours int, now time.Time) []TimeRange {
	startHour := 0
	if sameDay(day, now) {
		startHour = now.Hour() + 1
	}

	// 当天 23 点之后已经没有可选的整点了
	var candidates []time.Time
	for h := startHour; h <= 23; h++ {
		candidates = append(candidates, atHour(day, h, 0))
	}
	if startHour <= 23 {
		candidates = append(candidates, atHour(day, 23, 59))
	}

	buffer := time.Duration(bufferHours) * time.Hour
	var ranges []TimeRange
	var run []time.Time
	flush := func() {
		if len(run) > 0 {
			ranges = append(ranges, TimeRange{Start: run[0], End: run[len(run)-1]})
			run = nil
		}
	}

	for _, c := range candidates {
		if busyAt(c, existing, buffer) {
			flush()
			continue
		}
		run = append(run, c)
	}
	flush()
	return ranges
}

// busyAt 判断时刻是否落在某个加了缓冲的繁忙区间内
func busyAt(t time.Time, existing []Reservation, buffer time.Duration) bool {
	for i := range existing {
		r := &existing[i]
		if r.Canceled {
			continue
		}
		if t.After(r.StartsAt.Add(-buffer)) && t.Before(r.EndsAt.Add(buffer)) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func atHour(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
