package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/parse"
	"github.com/zyrrhky/schedease/internal/repository"
	"github.com/zyrrhky/schedease/internal/timegrid"
)

// TimetableService 时间表业务接口
//
// 网格、冲突与间隔全部在请求时由课程的原始时间串实时派生，
// 不做任何持久化。时间串解析失败的课程静默缺席网格（尽力而为）。
type TimetableService interface {
	GetTimetable(ctx context.Context, userID, scheduleID string) (*dto.TimetableResponse, error)
	Slots() []timegrid.TimeSlot
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ════════════════════════ GetTimetable ════════════════════════

func (s *timetableService) GetTimetable(ctx context.Context, userID, scheduleID string) (*dto.TimetableResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, userID, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("id", scheduleID), zap.Error(err))
		return nil, err
	}

	subjects, err := s.repo.Subject.ListByIDs(ctx, userID, []string(schedule.SubjectIDs))
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	resp := buildTimetable(schedule, subjects)
	resp.ScheduleID = scheduleID
	return resp, nil
}

// Slots 返回固定的时间轴（07:00–21:00，半小时粒度）
func (s *timetableService) Slots() []timegrid.TimeSlot {
	return timegrid.GenerateTimeSlots()
}

// ── 网格装配 ──

// buildTimetable 由课程集合装配网格响应
func buildTimetable(schedule *model.Schedule, subjects []model.Subject) *dto.TimetableResponse {
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
	conflicts := timegrid.DetectConflicts(entries)

	// 网格单元格补齐课程元信息
	cells := make(map[string]dto.GridCell, len(grid))
	for key, cell := range grid {
		sub := subjectIndex[cell.SubjectID]
		if sub == nil {
			continue
		}
		cells[key] = dto.GridCell{
			SubjectID:    cell.SubjectID,
			SubjectTitle: sub.SubjectTitle,
			SubjectCode:  sub.SubjectCode,
			Section:      sub.Section,
			Room:         cellRoom(cell.Interval.Room, sub.Room),
			Day:          cell.Interval.Day,
			StartTime:    cell.Interval.Start,
			EndTime:      cell.Interval.End,
			StartSlot:    cell.StartSlot,
			RowSpan:      cell.RowSpan,
		}
	}

	// 每门课的最小课间间隔
	minGaps := make([]dto.SubjectMinGap, 0, len(entries))
	for _, entry := range entries {
		sub := subjectIndex[entry.SubjectID]
		gap, ok := timegrid.MinGap(entry.Intervals)
		minGaps = append(minGaps, dto.SubjectMinGap{
			SubjectID:    entry.SubjectID,
			SubjectTitle: sub.SubjectTitle,
			MinGap:       gap,
			HasGap:       ok,
		})
	}

	// 展示的星期列
	viewDays := []string(schedule.ViewDays)
	if len(viewDays) == 0 {
		viewDays = defaultViewDays
	}
	days := make([]dto.DayColumn, 0, len(viewDays))
	for _, code := range viewDays {
		idx, ok := timegrid.DayIndex(code)
		if !ok {
			continue
		}
		days = append(days, dto.DayColumn{
			Code:  code,
			Name:  timegrid.DayName(code),
			Index: idx,
		})
	}

	if conflicts == nil {
		conflicts = []timegrid.Conflict{}
	}

	// 展示窗口随课表走，空值落默认全窗口
	startTime := schedule.StartTime
	if startTime == "" {
		startTime = defaultStartTime
	}
	endTime := schedule.EndTime
	if endTime == "" {
		endTime = defaultEndTime
	}

	return &dto.TimetableResponse{
		Slots:     timegrid.GenerateTimeSlots(),
		Grid:      cells,
		Days:      days,
		Conflicts: conflicts,
		MinGaps:   minGaps,
		StartTime: startTime,
		EndTime:   endTime,
	}
}

// cellRoom 课段教室优先，缺省回退课程级教室
func cellRoom(intervalRoom, subjectRoom string) string {
	if intervalRoom != "" {
		return intervalRoom
	}
	return subjectRoom
}
