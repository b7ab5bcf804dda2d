package timegrid

import (
	"sort"

	"github.com/zyrrhky/schedease/internal/parse"
)

// ── 冲突检测 ──────────────────────────────────────────────
//
// 网格装配对重叠区间静默先写者胜，适合渲染但掩盖冲突；
// 这里提供独立的检测遍历，返回全部两两冲突的课程对，
// 供上层在添加课程时告警。
// ─────────────────────────────────────────────────────────

// Conflict 同一天内两个课程的区间重叠
type Conflict struct {
	SubjectA string `json:"subject_a"`
	SubjectB string `json:"subject_b"`
	Day      string `json:"day"`
	Start    string `json:"start"` // 重叠窗口起点
	End      string `json:"end"`   // 重叠窗口终点
}

type placedInterval struct {
	subjectID string
	interval  parse.Interval
	startMin  int
	endMin    int
}

// DetectConflicts 按天扫描全部区间，返回所有不同课程间的重叠对。
// 同一课程自身的重叠区间不计入（那是录入问题，由间隔分析暴露为负间隔）。
func DetectConflicts(entries []SubjectIntervals) []Conflict {
	byDay := make(map[string][]placedInterval)
	for _, entry := range entries {
		for _, iv := range entry.Intervals {
			startMin, okS := MinutesOfDay(iv.Start)
			endMin, okE := MinutesOfDay(iv.End)
			if !okS || !okE {
				continue
			}
			byDay[iv.Day] = append(byDay[iv.Day], placedInterval{
				subjectID: entry.SubjectID,
				interval:  iv,
				startMin:  startMin,
				endMin:    endMin,
			})
		}
	}

	// 天序固定，保证输出确定性
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		di, _ := DayIndex(days[i])
		dj, _ := DayIndex(days[j])
		return di < dj
	})

	var conflicts []Conflict
	for _, day := range days {
		placed := byDay[day]
		sort.SliceStable(placed, func(i, j int) bool {
			return placed[i].startMin < placed[j].startMin
		})

		for i := 0; i < len(placed); i++ {
			for j := i + 1; j < len(placed); j++ {
				if placed[j].startMin >= placed[i].endMin {
					break // 已排序，后续更晚
				}
				if placed[i].subjectID == placed[j].subjectID {
					continue
				}
				conflicts = append(conflicts, Conflict{
					SubjectA: placed[i].subjectID,
					SubjectB: placed[j].subjectID,
					Day:      day,
					Start:    maxTime(placed[i].interval.Start, placed[j].interval.Start),
					End:      minTime(placed[i].interval.End, placed[j].interval.End),
				})
			}
		}
	}
	return conflicts
}

func maxTime(a, b string) string {
	am, _ := MinutesOfDay(a)
	bm, _ := MinutesOfDay(b)
	if am >= bm {
		return a
	}
	return b
}

func minTime(a, b string) string {
	am, _ := MinutesOfDay(a)
	bm, _ := MinutesOfDay(b)
	if am <= bm {
		return a
	}
	return b
}
