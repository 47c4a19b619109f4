package domain

import "time"

// 限时资费的可用时间窗：白天 11:00–20:00，夜晚 22:00–09:00（跨午夜）。
// 只有一个资费带 RestrictedHours 标记，其余资费全时段可用。
var (
	dayWindowStart   = TimeOfDay{Hour: 11}
	dayWindowEnd     = TimeOfDay{Hour: 20}
	nightWindowStart = TimeOfDay{Hour: 22}
	nightWindowEnd   = TimeOfDay{Hour: 9}
)

// IsAvailableOn 报告资费在给定日期是否开放。
// 限时资费只在周一到周四开放。
func (t *Tariff) IsAvailableOn(date time.Time) bool {
	if !t.RestrictedHours {
		return true
	}
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return false
	}
	return true
}

// AllowsInterval 报告预订区间是否落在资费允许的时间窗内。
// 区间必须完整落在白天窗或夜晚窗之一；夜晚窗跨午夜，
// 判断方式与日期价格规则的时间子区间一致。
func (t *Tariff) AllowsInterval(start, end time.Time) bool {
	if !t.RestrictedHours {
		return true
	}
	if !end.After(start) {
		return false
	}

	s, e := timeOfDayOf(start), timeOfDayOf(end)
	duration := end.Sub(start)

	// 时刻都在窗内还不够：还要排除绕了一圈回到窗内的超长区间
	dayWindow := time.Duration(dayWindowEnd.minutes()-dayWindowStart.minutes()) * time.Minute
	if withinWindow(s, dayWindowStart, dayWindowEnd) &&
		withinWindow(e, dayWindowStart, dayWindowEnd) &&
		duration <= dayWindow {
		return true
	}

	nightWindow := time.Duration(24*60-nightWindowStart.minutes()+nightWindowEnd.minutes()) * time.Minute
	if withinWindow(s, nightWindowStart, nightWindowEnd) &&
		withinWindow(e, nightWindowStart, nightWindowEnd) &&
		duration <= nightWindow {
		return true
	}
	return false
}
