package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conflicts 判断候选区间 [start, end) 是否与已有预订冲突。
// 每个未取消的预订都在两端加上 bufferHours 小时的保洁缓冲再做区间重叠测试：
// 候选起点严格落在扩展区间内、候选终点严格落在扩展区间内、
// 或候选区间完整包含扩展区间，三者任意一个成立即冲突。
// excludeID 用于改期场景，跳过正在修改的那条预订。
// 纯函数：不修改输入，命中第一条冲突即返回。
func Conflicts(start, end time.Time, existing []Reservation, bufferHours int, excludeID uuid.UUID) bool {
	buffer := time.Duration(bufferHours) * time.Hour
	for i := range existing {
		if overlapsBuffered(start, end, &existing[i], buffer, excludeID) {
			return true
		}
	}
	return false
}

// Conflicting 返回与候选区间冲突的全部预订，供调用方展示给客户
func Conflicting(start, end time.Time, existing []Reservation, bufferHours int, excludeID uuid.UUID) []Reservation {
	buffer := time.Duration(bufferHours) * time.Hour
	var conflicts []Reservation
	for i := range existing {
		if overlapsBuffered(start, end, &existing[i], buffer, excludeID) {
			conflicts = append(conflicts, existing[i])
		}
	}
	return conflicts
}

func overlapsBuffered(start, end time.Time, r *Reservation, buffer time.Duration, excludeID uuid.UUID) bool {
	if r.Canceled || (excludeID != uuid.Nil && r.ID == excludeID) {
		return false
	}
	bufferedStart := r.StartsAt.Add(-buffer)
	bufferedEnd := r.EndsAt.Add(buffer)

	if start.After(bufferedStart) && start.Before(bufferedEnd) {
		return true
	}
	if end.After(bufferedStart) && end.Before(bufferedEnd) {
		return true
	}
	// 候选区间完整包含扩展区间
	return !start.After(bufferedStart) && !end.Before(bufferedEnd)
}
