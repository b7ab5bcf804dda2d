package timegrid

import (
	"fmt"

	"github.com/zyrrhky/schedease/internal/parse"
)

// ── 周网格装配 ────────────────────────────────────────────
//
// 网格是 (列下标, 槽位时刻) → 单元格 的稀疏映射，键形如 "0_08:00"。
// 区间覆盖的每个槽位都写入一个键，同键先写者胜——后到的区间
// 在已占槽位上静默落空，本层不产生冲突错误；冲突检测是
// conflict.go 里独立的可组合操作。
//
// 渲染方约定：仅绘制槽位下标等于 StartSlot 的单元格，其余
// 槽位属于已开始区间的内部延续，由 RowSpan 推导、遍历时跳过。
// ─────────────────────────────────────────────────────────

// SubjectIntervals 一个课程与其解析后的全部时间区间
type SubjectIntervals struct {
	SubjectID string
	Intervals []parse.Interval
}

// Cell 网格单元格。StartSlot 是所属区间首个落入窗口的槽位下标，
// 同一区间覆盖的所有单元格共享同一个 StartSlot 与 RowSpan。
type Cell struct {
	SubjectID string         `json:"subject_id"`
	Interval  parse.Interval `json:"interval"`
	StartSlot int            `json:"start_slot"`
	RowSpan   int            `json:"row_span"`
}

// Grid 稀疏网格映射
type Grid map[string]Cell

// Key 构造网格键 "<dayIndex>_<time24>"
func Key(dayIndex int, time24 string) string {
	return fmt.Sprintf("%d_%s", dayIndex, time24)
}

// BuildGrid 按输入顺序将课程区间放置到周网格上。
// 纯函数：相同输入永远产出相同网格（先写者胜的确定性依赖
// entries 的顺序，调用方需传入稳定序）。
func BuildGrid(entries []SubjectIntervals) Grid {
	slots := GenerateTimeSlots()
	grid := make(Grid)

	for _, entry := range entries {
		for _, iv := range entry.Intervals {
			dayIndex, ok := DayIndex(iv.Day)
			if !ok {
				continue
			}

			startSlot := firstSlotInRange(slots, iv)
			if startSlot < 0 {
				continue
			}
			rowSpan := CalculateRowSpan(iv.Start, iv.End)

			for slotIndex := startSlot; slotIndex < len(slots); slotIndex++ {
				if !IsTimeInRange(slots[slotIndex].Time24, iv.Start, iv.End) {
					break
				}
				key := Key(dayIndex, slots[slotIndex].Time24)
				if _, taken := grid[key]; taken {
					continue
				}
				grid[key] = Cell{
					SubjectID: entry.SubjectID,
					Interval:  iv,
					StartSlot: startSlot,
					RowSpan:   rowSpan,
				}
			}
		}
	}
	return grid
}

// firstSlotInRange 返回区间覆盖的首个槽位下标；完全落在窗口外时返回 -1
func firstSlotInRange(slots []TimeSlot, iv parse.Interval) int {
	for i, slot := range slots {
		if IsTimeInRange(slot.Time24, iv.Start, iv.End) {
			return i
		}
	}
	return -1
}
