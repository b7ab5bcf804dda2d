package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/zyrrhky/schedease/internal/dto"
)

func setupExportFixture(t *testing.T) (ExportService, ScheduleService, string) {
	t.Helper()
	repo, _, _, _ := newMockRepository()
	subjectSvc := NewSubjectService(repo, zap.NewNop())
	scheduleSvc := NewScheduleService(repo, zap.NewNop())
	svc := NewExportService(repo, zap.NewNop())
	ctx := context.Background()

	a, err := subjectSvc.Create(ctx, testUserID, &dto.CreateSubjectRequest{
		SubjectTitle: "Algorithms",
		Section:      "A",
		Schedule:     "M 8:00 am - 9:30 am CL-301",
		Room:         "CL-301",
	})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	b, err := subjectSvc.Create(ctx, testUserID, &dto.CreateSubjectRequest{
		SubjectTitle: "Databases",
		Schedule:     "W 1:00 pm - 2:30 pm",
	})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	sched, err := scheduleSvc.Create(ctx, testUserID, &dto.CreateScheduleRequest{
		ScheduleName: "Export Plan",
		SubjectIDs:   []string{a.ID, b.ID},
	})
	if err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}
	return svc, scheduleSvc, sched.ID
}

func TestExportService_ExportXLSX(t *testing.T) {
	svc, _, scheduleID := setupExportFixture(t)
	ctx := context.Background()

	buf, filename, err := svc.ExportXLSX(ctx, testUserID, scheduleID)
	if err != nil {
		t.Fatalf("XLSX 导出失败: %v", err)
	}
	if filename != "Export Plan.xlsx" {
		t.Errorf("文件名不正确: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	// 表头
	if v, _ := f.GetCellValue("Timetable", "A1"); v != "Time" {
		t.Errorf("A1 应为 Time，实际=%q", v)
	}
	if v, _ := f.GetCellValue("Timetable", "B1"); v != "Monday" {
		t.Errorf("B1 应为 Monday，实际=%q", v)
	}

	// Algorithms 在周一 08:00 行（表头占 1 行，08:00 是第 2 个槽 → 第 4 行）
	if v, _ := f.GetCellValue("Timetable", "B4"); !strings.Contains(v, "Algorithms") {
		t.Errorf("B4 应含 Algorithms，实际=%q", v)
	}
	// Databases 在周三 13:00 行（第 12 个槽 → 第 14 行）
	if v, _ := f.GetCellValue("Timetable", "D14"); !strings.Contains(v, "Databases") {
		t.Errorf("D14 应含 Databases，实际=%q", v)
	}
}

func TestExportService_ExportICS(t *testing.T) {
	svc, _, scheduleID := setupExportFixture(t)
	ctx := context.Background()

	buf, filename, err := svc.ExportICS(ctx, testUserID, scheduleID)
	if err != nil {
		t.Fatalf("ICS 导出失败: %v", err)
	}
	if filename != "Export Plan.ics" {
		t.Errorf("文件名不正确: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "END:VCALENDAR") {
		t.Error("导出内容应为合法 iCalendar")
	}
	if !strings.Contains(content, "SUMMARY:Algorithms") {
		t.Error("应包含 Algorithms 事件")
	}
	if !strings.Contains(content, "SUMMARY:Databases") {
		t.Error("应包含 Databases 事件")
	}
	if !strings.Contains(content, "RRULE:FREQ=WEEKLY") {
		t.Error("事件应带每周 RRULE")
	}
	if !strings.Contains(content, "LOCATION:CL-301") {
		t.Error("应包含教室信息")
	}
}

func TestExportService_EmptyScheduleNoSubjects(t *testing.T) {
	svc, scheduleSvc, _ := setupExportFixture(t)
	ctx := context.Background()

	empty, err := scheduleSvc.Create(ctx, testUserID, &dto.CreateScheduleRequest{ScheduleName: "Empty"})
	if err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}

	if _, _, err := svc.ExportXLSX(ctx, testUserID, empty.ID); !errors.Is(err, ErrExportNoSubjects) {
		t.Errorf("空课表 XLSX 导出期望 ErrExportNoSubjects，得到: %v", err)
	}
	if _, _, err := svc.ExportICS(ctx, testUserID, empty.ID); !errors.Is(err, ErrExportNoSubjects) {
		t.Errorf("空课表 ICS 导出期望 ErrExportNoSubjects，得到: %v", err)
	}
}

func TestExportService_ScheduleNotFound(t *testing.T) {
	svc, _, _ := setupExportFixture(t)
	ctx := context.Background()

	if _, _, err := svc.ExportXLSX(ctx, testUserID, "no-such-id"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，得到: %v", err)
	}
}
