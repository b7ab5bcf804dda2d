package parse

import (
	"regexp"
	"strings"
)

// ── 时间串解析器 ──────────────────────────────────────────
//
// 记录的 Schedule 字段由若干片段以 " / " 连接，每个片段描述
// 一个或多个星期共用的一段时间，带可选教室后缀：
//   "M 8:00 am - 9:30 am CL-301"        单日规范格式
//   "M W F 8:00 am - 9:30 am CL-301"    多日回退格式（空格分隔）
//
// 连写的多日 token（如 "MWF"）按空白切分后仍是单个 token，
// 星期归一化失败后被整体丢弃——这是上游数据源的既有歧义，
// 在确认预期输入格式前不做猜测性拆分。
// ─────────────────────────────────────────────────────────

// Interval 单个星期的一段上课时间。Start/End 为 24 小时制 "HH:MM"。
// 解析器不强制 Start < End；反向区间在网格层的范围判定下自然落空。
type Interval struct {
	Day   string
	Start string
	End   string
	Room  string
}

var (
	// 单日：1-2 字母星期 + 时间范围 + 可选教室
	singleDayRe = regexp.MustCompile(`(?i)^([A-Za-z]{1,2})\s+(\d{1,2}:\d{2}\s*[ap]m)\s*-\s*(\d{1,2}:\d{2}\s*[ap]m)\s*(.*)$`)
	// 多日回退：前导字母/空格块 + 时间范围 + 可选教室
	multiDayRe = regexp.MustCompile(`(?i)^([A-Za-z\s]+)\s+(\d{1,2}:\d{2}\s*[ap]m)\s*-\s*(\d{1,2}:\d{2}\s*[ap]m)\s*(.*)$`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// ParseScheduleString 解析完整 Schedule 字段：按 " / " 切分片段后
// 逐段解析并拼接。任何片段解析失败只影响该片段自身。
func ParseScheduleString(raw string) []Interval {
	var intervals []Interval
	for _, part := range strings.Split(raw, " / ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		intervals = append(intervals, ParseScheduleSegment(part)...)
	}
	return intervals
}

// ParseScheduleSegment 解析单个片段为零或多个 Interval。
// 先按单日规范格式匹配，失败后回退到多日格式；星期或时刻
// 归一化失败的条目被逐个丢弃（允许部分成功）。
func ParseScheduleSegment(segment string) []Interval {
	s := spaceRunRe.ReplaceAllString(strings.TrimSpace(segment), " ")

	if m := singleDayRe.FindStringSubmatch(s); m != nil {
		day, ok := NormalizeDay(m[1])
		if !ok {
			return nil
		}
		start, ok := To24Hour(m[2])
		if !ok {
			return nil
		}
		end, ok := To24Hour(m[3])
		if !ok {
			return nil
		}
		return []Interval{{Day: day, Start: start, End: end, Room: strings.TrimSpace(m[4])}}
	}

	m := multiDayRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	start, okStart := To24Hour(m[2])
	end, okEnd := To24Hour(m[3])
	if !okStart || !okEnd {
		return nil
	}
	room := strings.TrimSpace(m[4])

	var intervals []Interval
	for _, token := range strings.Fields(m[1]) {
		day, ok := NormalizeDay(token)
		if !ok {
			continue
		}
		intervals = append(intervals, Interval{Day: day, Start: start, End: end, Room: room})
	}
	return intervals
}
