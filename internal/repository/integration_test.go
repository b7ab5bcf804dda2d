//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/repository"
	"github.com/zyrrhky/schedease/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=schedease password=schedease_password dbname=schedease_test sslmode=disable TimeZone=Asia/Manila"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 用真实迁移脚本建表，而不是 AutoMigrate：
	// 仓储层查询必须能跑在迁移产出的 schema 上，列名漂移要在这里暴露
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取底层 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestUser 创建测试用户并返回清理函数
func setupTestUser(t *testing.T) (user *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	user = &model.User{
		Name:         "测试用户",
		Email:        fmt.Sprintf("test%d@schedease.dev", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("user_id = ?", user.UserID).Delete(&model.Subject{})
		testDB.Where("user_id = ?", user.UserID).Delete(&model.Schedule{})
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Subject Constraints
// ═══════════════════════════════════════════════════════════

func TestSubject_UniqueDataIDPerUser(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	s1 := &model.Subject{
		UserID:       user.UserID,
		DataID:       "data_1",
		SubjectTitle: "Data Structures",
	}
	if err := repo.Subject.Create(ctx, s1); err != nil {
		t.Fatalf("创建第一个课程失败: %v", err)
	}

	// 同一用户重复 data_id 应违反唯一约束
	s2 := &model.Subject{
		UserID:       user.UserID,
		DataID:       "data_1",
		SubjectTitle: "Algorithms",
	}
	if err := repo.Subject.Create(ctx, s2); err == nil {
		t.Fatal("期望唯一约束违反，但创建成功了")
	}
}

func TestSubject_ExistsByTitle_CaseInsensitive(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	s := &model.Subject{
		UserID:       user.UserID,
		DataID:       "data_title",
		SubjectTitle: "Operating Systems",
	}
	if err := repo.Subject.Create(ctx, s); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	exists, err := repo.Subject.ExistsByTitle(ctx, user.UserID, "OPERATING SYSTEMS")
	if err != nil {
		t.Fatalf("ExistsByTitle 失败: %v", err)
	}
	if !exists {
		t.Error("期望大小写不敏感命中，实际未命中")
	}

	exists, err = repo.Subject.ExistsByTitle(ctx, user.UserID, "Compilers")
	if err != nil {
		t.Fatalf("ExistsByTitle 失败: %v", err)
	}
	if exists {
		t.Error("不存在的标题不应命中")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Schedule TEXT[] round-trip and membership query
// ═══════════════════════════════════════════════════════════

func TestSchedule_StringArrayRoundTrip(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sched := &model.Schedule{
		UserID:       user.UserID,
		ScheduleName: "First Semester",
		SubjectIDs:   model.StringArray{"id-a", "id-b"},
		ViewDays:     model.StringArray{"M", "W", "F"},
		StartTime:    "07:00",
		EndTime:      "21:00",
	}
	if err := repo.Schedule.Create(ctx, sched); err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}

	found, err := repo.Schedule.GetByID(ctx, user.UserID, sched.ScheduleID)
	if err != nil {
		t.Fatalf("查询课表失败: %v", err)
	}
	if len(found.SubjectIDs) != 2 || found.SubjectIDs[0] != "id-a" {
		t.Errorf("SubjectIDs 往返不一致: %v", found.SubjectIDs)
	}
	if len(found.ViewDays) != 3 {
		t.Errorf("ViewDays 往返不一致: %v", found.ViewDays)
	}
}

func TestSchedule_ListContainingSubject(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	withSubject := &model.Schedule{
		UserID:       user.UserID,
		ScheduleName: "Plan A",
		SubjectIDs:   model.StringArray{"target-id", "other-id"},
	}
	withoutSubject := &model.Schedule{
		UserID:       user.UserID,
		ScheduleName: "Plan B",
		SubjectIDs:   model.StringArray{"other-id"},
	}
	if err := repo.Schedule.Create(ctx, withSubject); err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}
	if err := repo.Schedule.Create(ctx, withoutSubject); err != nil {
		t.Fatalf("创建课表失败: %v", err)
	}

	list, err := repo.Schedule.ListContainingSubject(ctx, user.UserID, "target-id")
	if err != nil {
		t.Fatalf("ListContainingSubject 失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 张课表，得到 %d 张", len(list))
	}
	if list[0].ScheduleID != withSubject.ScheduleID {
		t.Errorf("命中的课表不正确: %s", list[0].ScheduleID)
	}
}
