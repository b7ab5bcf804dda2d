package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// ── 周视图时间轴 ──────────────────────────────────────────
//
// 可见窗口固定为 07:00–21:00，步长 30 分钟，共 29 个槽位。
// 槽位序列是确定性的纯函数输出，每次渲染重新生成。
// ─────────────────────────────────────────────────────────

const (
	windowStartHour = 7
	windowEndHour   = 21 // 晚上 9 点

	// SlotMinutes 单个槽位的时间粒度
	SlotMinutes = 30
)

// TimeSlot 网格的一行：24 小时制键值与派生的 12 小时制展示标签
type TimeSlot struct {
	Time24 string `json:"time24"`
	Time12 string `json:"time12"`
}

// GenerateTimeSlots 生成可见窗口内的全部槽位（29 个）。
// 12 小时制标签显式处理 12 AM/PM 边界：0 时→"12 AM"，12 时→"12 PM"。
func GenerateTimeSlots() []TimeSlot {
	var slots []TimeSlot
	for h := windowStartHour; h <= windowEndHour; h++ {
		hour12, period := to12Hour(h)

		slots = append(slots, TimeSlot{
			Time24: fmt.Sprintf("%02d:00", h),
			Time12: fmt.Sprintf("%d:00 %s", hour12, period),
		})
		if h < windowEndHour {
			slots = append(slots, TimeSlot{
				Time24: fmt.Sprintf("%02d:30", h),
				Time12: fmt.Sprintf("%d:30 %s", hour12, period),
			})
		}
	}
	return slots
}

func to12Hour(h int) (int, string) {
	switch {
	case h == 0:
		return 12, "AM"
	case h == 12:
		return 12, "PM"
	case h > 12:
		return h - 12, "PM"
	default:
		return h, "AM"
	}
}

// MinutesOfDay 将 "HH:MM" 解析为当日分钟数。
// 形态不符或含非数字部分时返回 (0, false)，从不 panic。
func MinutesOfDay(time24 string) (int, bool) {
	parts := strings.Split(time24, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// IsTimeInRange 判断 start ≤ time24 < end（按当日分钟数比较）。
// 任一输入畸形时返回 false 而非报错。
func IsTimeInRange(time24, start, end string) bool {
	t, ok := MinutesOfDay(time24)
	if !ok {
		return false
	}
	s, ok := MinutesOfDay(start)
	if !ok {
		return false
	}
	e, ok := MinutesOfDay(end)
	if !ok {
		return false
	}
	return t >= s && t < e
}

// CalculateRowSpan 区间占据的连续槽位数：ceil(时长/30)，最小 1。
// 畸形输入返回 1。
func CalculateRowSpan(start, end string) int {
	s, okS := MinutesOfDay(start)
	e, okE := MinutesOfDay(end)
	if !okS || !okE {
		return 1
	}
	span := (e - s + SlotMinutes - 1) / SlotMinutes
	if span < 1 {
		return 1
	}
	return span
}

// dayColumns 规范星期代码 → 列下标（M=0 … SU=6）
var dayColumns = map[string]int{
	"M": 0, "T": 1, "W": 2, "TH": 3, "F": 4, "S": 5, "SU": 6,
}

// dayNames 规范星期代码 → 完整名称（过滤与展示共用）
var dayNames = map[string]string{
	"M": "Monday", "T": "Tuesday", "W": "Wednesday", "TH": "Thursday",
	"F": "Friday", "S": "Saturday", "SU": "Sunday",
}

// DayIndex 返回星期代码的列下标；未知代码返回 (0, false)
func DayIndex(code string) (int, bool) {
	idx, ok := dayColumns[code]
	return idx, ok
}

// DayName 返回星期代码的完整名称；未知代码返回原样
func DayName(code string) string {
	if name, ok := dayNames[code]; ok {
		return name
	}
	return code
}
