package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/repository"
)

const testUserID = "user-test"

func newTestSubjectService() (SubjectService, *repository.Repository, *mockSubjectRepo, *mockScheduleRepo) {
	repo, _, subjects, schedules := newMockRepository()
	svc := NewSubjectService(repo, zap.NewNop())
	return svc, repo, subjects, schedules
}

func TestSubjectService_Create(t *testing.T) {
	svc, _, subjects, _ := newTestSubjectService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{
		SubjectTitle: "  Data Structures  ",
		SubjectCode:  "CS102",
		Schedule:     "M 8:00 am - 9:30 am Room 301",
		Room:         "Room 301",
	})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	if resp.SubjectTitle != "Data Structures" {
		t.Errorf("标题应去除首尾空白，实际=%q", resp.SubjectTitle)
	}
	if resp.DataID == "" {
		t.Error("应铸造 data_id")
	}
	if resp.Modality != "f2f" {
		t.Errorf("教室线索应推断为 f2f，实际=%s", resp.Modality)
	}
	if len(subjects.subjects) != 1 {
		t.Errorf("期望落库 1 门课程，实际=%d", len(subjects.subjects))
	}
}

func TestSubjectService_Create_ExplicitModalityWins(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{
		SubjectTitle: "Seminar",
		Room:         "Room 301", // 启发式会给 f2f
		Modality:     "online",
	})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	if resp.Modality != "online" {
		t.Errorf("显式 modality 应优先于启发式，实际=%s", resp.Modality)
	}
}

func TestSubjectService_Create_DuplicateTitle(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{SubjectTitle: "Algorithms"}); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	// 大小写不同仍判重
	_, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{SubjectTitle: "ALGORITHMS"})
	if !errors.Is(err, ErrSubjectTitleExists) {
		t.Errorf("期望 ErrSubjectTitleExists，得到: %v", err)
	}
}

func TestSubjectService_Update(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{SubjectTitle: "Physics"})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	newSchedule := "T 1:00 pm - 2:30 pm"
	closed := true
	updated, err := svc.Update(ctx, testUserID, created.ID, &dto.UpdateSubjectRequest{
		Schedule: &newSchedule,
		IsClosed: &closed,
	})
	if err != nil {
		t.Fatalf("更新课程失败: %v", err)
	}
	if updated.Schedule != newSchedule {
		t.Errorf("时间串未更新: %s", updated.Schedule)
	}
	if !updated.IsClosed {
		t.Error("is_closed 未更新")
	}
	if updated.SubjectTitle != "Physics" {
		t.Errorf("未更新的字段不应变化: %s", updated.SubjectTitle)
	}
}

func TestSubjectService_Update_NotFound(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	title := "X"
	_, err := svc.Update(ctx, testUserID, "no-such-id", &dto.UpdateSubjectRequest{SubjectTitle: &title})
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，得到: %v", err)
	}
}

func TestSubjectService_Delete_CascadesFromSchedules(t *testing.T) {
	svc, repo, _, schedules := newTestSubjectService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{SubjectTitle: "Chemistry"})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	// 两张课表：一张引用该课程，一张不引用
	withSubject := &model.Schedule{
		UserID:       testUserID,
		ScheduleName: "Plan A",
		SubjectIDs:   model.StringArray{created.ID, "other-id"},
	}
	withoutSubject := &model.Schedule{
		UserID:       testUserID,
		ScheduleName: "Plan B",
		SubjectIDs:   model.StringArray{"other-id"},
	}
	if err := repo.Schedule.Create(ctx, withSubject); err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}
	if err := repo.Schedule.Create(ctx, withoutSubject); err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}

	if err := svc.Delete(ctx, testUserID, created.ID); err != nil {
		t.Fatalf("删除课程失败: %v", err)
	}

	// 课程已删
	if _, err := svc.GetByID(ctx, testUserID, created.ID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("删除后应查不到课程，得到: %v", err)
	}

	// 引用课表已联动移除
	planA := schedules.schedules[withSubject.ScheduleID]
	if planA.SubjectIDs.Contains(created.ID) {
		t.Error("课表 Plan A 中应已移除该课程")
	}
	if !planA.SubjectIDs.Contains("other-id") {
		t.Error("课表 Plan A 中的其他课程不应受影响")
	}
	planB := schedules.schedules[withoutSubject.ScheduleID]
	if len(planB.SubjectIDs) != 1 {
		t.Errorf("未引用的课表不应变化: %v", planB.SubjectIDs)
	}
}

func TestSubjectService_List_KeywordAndPaging(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	for _, title := range []string{"Calculus I", "Calculus II", "History"} {
		if _, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{SubjectTitle: title}); err != nil {
			t.Fatalf("创建课程失败: %v", err)
		}
	}

	list, total, err := svc.List(ctx, testUserID, &dto.ListSubjectsRequest{Keyword: "calculus"})
	if err != nil {
		t.Fatalf("列出课程失败: %v", err)
	}
	if total != 2 {
		t.Errorf("期望关键词命中 2 门，实际=%d", total)
	}
	if len(list) != 2 {
		t.Errorf("期望返回 2 门，实际=%d", len(list))
	}
}

// ════════════════════════ Filter ════════════════════════

func createFilterFixtures(t *testing.T, svc SubjectService) map[string]string {
	t.Helper()
	ctx := context.Background()

	// 三门课：背靠背周一连堂 / 周五单节面授 / 线上课
	fixtures := []dto.CreateSubjectRequest{
		{SubjectTitle: "Tight Pair", Schedule: "M 8:00 am - 9:30 am / M 9:45 am - 11:00 am", Room: "CL-301"},
		{SubjectTitle: "Friday Lab", Schedule: "F 1:00 pm - 4:00 pm", Room: "LAB 2"},
		{SubjectTitle: "Remote Lecture", Schedule: "T 6:00 pm - 7:30 pm", Room: "Online"},
	}

	ids := make(map[string]string, len(fixtures))
	for _, f := range fixtures {
		resp, err := svc.Create(ctx, testUserID, &f)
		if err != nil {
			t.Fatalf("创建课程失败: %v", err)
		}
		ids[f.SubjectTitle] = resp.ID
	}
	return ids
}

func TestSubjectService_Filter_MinBreak(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	createFilterFixtures(t, svc)
	ctx := context.Background()

	// Tight Pair 的同日间隔是 15 分钟，min_break=30 应将其淘汰
	resp, err := svc.Filter(ctx, testUserID, &dto.FilterSubjectsRequest{MinBreak: 30})
	if err != nil {
		t.Fatalf("筛选失败: %v", err)
	}
	if len(resp.Subjects) != 2 {
		t.Fatalf("期望剩余 2 门，实际=%d", len(resp.Subjects))
	}
	for _, s := range resp.Subjects {
		if s.SubjectTitle == "Tight Pair" {
			t.Error("Tight Pair 应被 min_break 淘汰")
		}
	}
	if !resp.Matched {
		t.Error("有命中时 Matched 应为 true")
	}
}

func TestSubjectService_Filter_ExcludeDays(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	createFilterFixtures(t, svc)
	ctx := context.Background()

	resp, err := svc.Filter(ctx, testUserID, &dto.FilterSubjectsRequest{ExcludeDays: []string{"F"}})
	if err != nil {
		t.Fatalf("筛选失败: %v", err)
	}
	for _, s := range resp.Subjects {
		if s.SubjectTitle == "Friday Lab" {
			t.Error("Friday Lab 应被 exclude_days 淘汰")
		}
	}
	if len(resp.Subjects) != 2 {
		t.Errorf("期望剩余 2 门，实际=%d", len(resp.Subjects))
	}
}

func TestSubjectService_Filter_ClassTypes(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	createFilterFixtures(t, svc)
	ctx := context.Background()

	resp, err := svc.Filter(ctx, testUserID, &dto.FilterSubjectsRequest{ClassTypes: []string{"online"}})
	if err != nil {
		t.Fatalf("筛选失败: %v", err)
	}
	if len(resp.Subjects) != 1 || resp.Subjects[0].SubjectTitle != "Remote Lecture" {
		t.Errorf("期望仅 Remote Lecture 命中，实际=%v", resp.Subjects)
	}
}

func TestSubjectService_Filter_UnknownModalityFailsClosed(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	// 无任何形式线索的课程
	if _, err := svc.Create(ctx, testUserID, &dto.CreateSubjectRequest{SubjectTitle: "Mystery"}); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	resp, err := svc.Filter(ctx, testUserID, &dto.FilterSubjectsRequest{ClassTypes: []string{"f2f"}})
	if err != nil {
		t.Fatalf("筛选失败: %v", err)
	}
	if len(resp.Subjects) != 0 {
		t.Errorf("unknown 形式在类型筛选激活时应按不匹配处理，实际=%v", resp.Subjects)
	}
	if resp.Matched {
		t.Error("有课程但全部被筛掉时 Matched 应为 false")
	}
}

func TestSubjectService_Filter_NoFiltersReturnsAll(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	createFilterFixtures(t, svc)
	ctx := context.Background()

	resp, err := svc.Filter(ctx, testUserID, &dto.FilterSubjectsRequest{})
	if err != nil {
		t.Fatalf("筛选失败: %v", err)
	}
	if len(resp.Subjects) != 3 {
		t.Errorf("无条件筛选应返回全部 3 门，实际=%d", len(resp.Subjects))
	}
}

func TestSubjectService_Filter_EmptyCollectionStillMatched(t *testing.T) {
	svc, _, _, _ := newTestSubjectService()
	ctx := context.Background()

	// 空集合与"有课程但全部被筛掉"区分：前者 Matched=true
	resp, err := svc.Filter(ctx, testUserID, &dto.FilterSubjectsRequest{MinBreak: 30})
	if err != nil {
		t.Fatalf("筛选失败: %v", err)
	}
	if len(resp.Subjects) != 0 {
		t.Errorf("空集合应返回空列表，实际=%v", resp.Subjects)
	}
	if !resp.Matched {
		t.Error("空集合的 Matched 应为 true")
	}
}
