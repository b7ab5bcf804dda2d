package timegrid

import (
	"sort"

	"github.com/zyrrhky/schedease/internal/parse"
)

// ── 课间间隔分析 ──────────────────────────────────────────

// MinGap 计算同一天相邻区间之间的最小间隔（分钟）。
// 按星期代码分组、组内按起始时刻升序，相邻对取 nextStart−prevEnd，
// 跨天取全局最小。没有任何一天拥有 ≥2 个区间时返回 (0, false)。
// 负间隔（区间重叠）是合法输出，会正确地不满足最小课间约束。
func MinGap(intervals []parse.Interval) (int, bool) {
	type span struct{ start, end int }
	byDay := make(map[string][]span)
	for _, iv := range intervals {
		startMin, okS := MinutesOfDay(iv.Start)
		endMin, okE := MinutesOfDay(iv.End)
		if !okS || !okE {
			continue
		}
		byDay[iv.Day] = append(byDay[iv.Day], span{start: startMin, end: endMin})
	}

	minGap := 0
	found := false
	for _, spans := range byDay {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			gap := spans[i].start - spans[i-1].end
			if !found || gap < minGap {
				minGap = gap
				found = true
			}
		}
	}
	return minGap, found
}

// MeetsMinBreak 最小课间过滤：无间隔约束（单区间/跨天分散）视为通过
func MeetsMinBreak(intervals []parse.Interval, minBreak int) bool {
	gap, ok := MinGap(intervals)
	if !ok {
		return true
	}
	return gap >= minBreak
}

// Days 返回区间集覆盖的规范星期代码（按列下标升序去重）
func Days(intervals []parse.Interval) []string {
	seen := make(map[string]bool)
	var days []string
	for _, iv := range intervals {
		if _, ok := DayIndex(iv.Day); !ok {
			continue
		}
		if !seen[iv.Day] {
			seen[iv.Day] = true
			days = append(days, iv.Day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		di, _ := DayIndex(days[i])
		dj, _ := DayIndex(days[j])
		return di < dj
	})
	return days
}

// HasAnyDay 判断区间集是否落在给定星期代码集合中的任意一天
func HasAnyDay(intervals []parse.Interval, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	set := make(map[string]bool, len(excluded))
	for _, d := range excluded {
		set[d] = true
	}
	for _, iv := range intervals {
		if set[iv.Day] {
			return true
		}
	}
	return false
}
