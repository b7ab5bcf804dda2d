package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/parse"
	"github.com/zyrrhky/schedease/internal/repository"
	"github.com/zyrrhky/schedease/internal/timegrid"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSubjects   = errors.New("课表中没有可导出的课程")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// icsReferenceMonday ICS 导出的固定参考周起点（周一）
// 课表是单周模板，没有真实日期语义；事件挂在参考周上并以
// 每周 RRULE 重复，由日历客户端展开
var icsReferenceMonday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ExportService 导出业务接口
//
// 两种格式都以 bytes.Buffer 返回，由 Handler 层设置响应头后写出：
//   - .xlsx：周视图网格（行=半小时时间槽，列=星期）
//   - .ics：每个课段一条带每周 RRULE 的 VEVENT
type ExportService interface {
	ExportXLSX(ctx context.Context, userID, scheduleID string) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, userID, scheduleID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════════ ExportXLSX ════════════════════════

func (s *exportService) ExportXLSX(ctx context.Context, userID, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, subjects, err := s.loadSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, "", err
	}

	subjectIndex := make(map[string]*model.Subject, len(subjects))
	entries := make([]timegrid.SubjectIntervals, 0, len(subjects))
	for i := range subjects {
		sub := &subjects[i]
		subjectIndex[sub.SubjectID] = sub
		entries = append(entries, timegrid.SubjectIntervals{
			SubjectID: sub.SubjectID,
			Intervals: parse.ParseScheduleString(sub.Schedule),
		})
	}

	grid := timegrid.BuildGrid(entries)
	slots := timegrid.GenerateTimeSlots()

	viewDays := []string(schedule.ViewDays)
	if len(viewDays) == 0 {
		viewDays = defaultViewDays
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：时间列窄，星期列宽
	f.SetColWidth(sheetName, "A", "A", 10)
	lastCol, _ := excelize.ColumnNumberToName(1 + len(viewDays))
	f.SetColWidth(sheetName, "B", lastCol, 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})

	// 表头：A1 = Time，之后每列一个星期
	f.SetCellValue(sheetName, "A1", "Time")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)
	for i, code := range viewDays {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, col+"1", timegrid.DayName(code))
		f.SetCellStyle(sheetName, col+"1", col+"1", headerStyle)
	}

	// 数据行：每个时间槽一行；课段只写在起始槽并纵向合并 rowspan
	for slotIdx, slot := range slots {
		row := slotIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), slot.Time12)

		for i, code := range viewDays {
			dayIdx, ok := timegrid.DayIndex(code)
			if !ok {
				continue
			}
			cell, found := grid[timegrid.Key(dayIdx, slot.Time24)]
			if !found || cell.StartSlot != slotIdx {
				continue
			}
			sub := subjectIndex[cell.SubjectID]
			if sub == nil {
				continue
			}

			col, _ := excelize.ColumnNumberToName(2 + i)
			text := sub.SubjectTitle
			if room := cellRoom(cell.Interval.Room, sub.Room); room != "" {
				text += "\n" + room
			}
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), text)

			endRow := row + cell.RowSpan - 1
			if maxRow := len(slots) + 1; endRow > maxRow {
				endRow = maxRow
			}
			if endRow > row {
				f.MergeCell(sheetName, fmt.Sprintf("%s%d", col, row), fmt.Sprintf("%s%d", col, endRow))
			}
			f.SetCellStyle(sheetName, fmt.Sprintf("%s%d", col, row), fmt.Sprintf("%s%d", col, endRow), cellStyle)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s.xlsx", schedule.ScheduleName)
	return buf, filename, nil
}

// ════════════════════════ ExportICS ════════════════════════

func (s *exportService) ExportICS(ctx context.Context, userID, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, subjects, err := s.loadSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SchedEase//Schedule Export//EN")

	eventCount := 0
	for i := range subjects {
		sub := &subjects[i]
		intervals := parse.ParseScheduleString(sub.Schedule)

		for n, iv := range intervals {
			dayIdx, ok := timegrid.DayIndex(iv.Day)
			if !ok {
				continue
			}
			startMin, ok := timegrid.MinutesOfDay(iv.Start)
			if !ok {
				continue
			}
			endMin, ok := timegrid.MinutesOfDay(iv.End)
			if !ok {
				continue
			}

			dayStart := icsReferenceMonday.AddDate(0, 0, dayIdx)
			event := cal.AddEvent(fmt.Sprintf("%s-%d@schedease", sub.SubjectID, n))
			event.SetCreatedTime(time.Now())
			event.SetStartAt(dayStart.Add(time.Duration(startMin) * time.Minute))
			event.SetEndAt(dayStart.Add(time.Duration(endMin) * time.Minute))
			event.SetSummary(sub.SubjectTitle)
			if room := cellRoom(iv.Room, sub.Room); room != "" {
				event.SetLocation(room)
			}
			if sub.Section != "" {
				event.SetDescription(fmt.Sprintf("Section %s", sub.Section))
			}
			event.AddRrule("FREQ=WEEKLY")
			eventCount++
		}
	}

	if eventCount == 0 {
		return nil, "", ErrExportNoSubjects
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s.ics", schedule.ScheduleName)
	return buf, filename, nil
}

// ── 内部辅助方法 ──

// loadSchedule 加载课表及其引用的课程
func (s *exportService) loadSchedule(ctx context.Context, userID, scheduleID string) (*model.Schedule, []model.Subject, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, userID, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("id", scheduleID), zap.Error(err))
		return nil, nil, err
	}

	subjects, err := s.repo.Subject.ListByIDs(ctx, userID, []string(schedule.SubjectIDs))
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, nil, err
	}
	if len(subjects) == 0 {
		return nil, nil, ErrExportNoSubjects
	}

	return schedule, subjects, nil
}
