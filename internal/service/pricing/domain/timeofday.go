package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay 表示一天内的时刻，用于日期价格规则的时间子区间
// 和限时资费的可用时间窗。
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay 解析 "15:04" 格式的时刻字符串
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("malformed time of day %q: %w", s, ErrBadConfig)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("malformed hour in %q: %w", s, ErrBadConfig)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("malformed minute in %q: %w", s, ErrBadConfig)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// timeOfDayOf 提取时间戳的一天内时刻
func timeOfDayOf(at time.Time) TimeOfDay {
	return TimeOfDay{Hour: at.Hour(), Minute: at.Minute()}
}

// withinWindow 判断时刻 t 是否落在 [start, end] 窗口内（含边界）。
// start > end 表示窗口跨过午夜，此时测试条件为 t >= start 或 t <= end。
func withinWindow(t, start, end TimeOfDay) bool {
	tm, sm, em := t.minutes(), start.minutes(), end.minutes()
	if sm > em {
		return tm >= sm || tm <= em
	}
	return tm >= sm && tm <= em
}

// dateOf 将时间戳截断到当天零点，供按日历日比较使用
func dateOf(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
}

// sameCalendarDate 判断两个时间戳是否落在同一个日历日
func sameCalendarDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
