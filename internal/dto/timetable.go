package dto

import "github.com/zyrrhky/schedease/internal/timegrid"

// ── 时间表模块 DTO ──

// TimetableResponse 课表网格响应
// 网格按请求实时计算，不落库
type TimetableResponse struct {
	ScheduleID string               `json:"schedule_id"`
	Slots      []timegrid.TimeSlot  `json:"slots"`
	Grid       map[string]GridCell  `json:"grid"` // key: "<dayIndex>_<HH:MM>"
	Days       []DayColumn          `json:"days"`
	Conflicts  []timegrid.Conflict  `json:"conflicts"`
	MinGaps    []SubjectMinGap      `json:"min_gaps"`
	// 课表的展示窗口：Slots 始终覆盖全天 07:00–21:00，
	// 渲染端据此裁剪可见行
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// GridCell 网格单元格
// 渲染端仅绘制 slot_index == start_slot 的单元格，其余用于占位判断
type GridCell struct {
	SubjectID    string `json:"subject_id"`
	SubjectTitle string `json:"subject_title"`
	SubjectCode  string `json:"subject_code"`
	Section      string `json:"section"`
	Room         string `json:"room"`
	Day          string `json:"day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	StartSlot    int    `json:"start_slot"`
	RowSpan      int    `json:"row_span"`
}

// DayColumn 星期列
type DayColumn struct {
	Code  string `json:"code"`  // M/T/W/TH/F/S/SU
	Name  string `json:"name"`  // Monday …
	Index int    `json:"index"` // 0-6
}

// SubjectMinGap 课程的最小课间间隔
type SubjectMinGap struct {
	SubjectID    string `json:"subject_id"`
	SubjectTitle string `json:"subject_title"`
	MinGap       int    `json:"min_gap"` // 分钟，可为负（表示自身重叠）
	HasGap       bool   `json:"has_gap"` // false 表示没有同日相邻课段
}
