package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/repository"
)

// ── 课表模块业务错误 ──

var (
	ErrScheduleNotFound   = errors.New("课表不存在")
	ErrScheduleNameExists = errors.New("同名课表已存在")
	ErrSubjectNotOwned    = errors.New("课表引用了不存在的课程")
)

// 课表默认展示窗口
const (
	defaultStartTime = "07:00"
	defaultEndTime   = "21:00"
)

// defaultViewDays 默认展示的星期列
var defaultViewDays = []string{"M", "T", "W", "TH", "F", "S"}

// ScheduleService 课表业务接口
type ScheduleService interface {
	Create(ctx context.Context, userID string, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, userID, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, userID string) ([]dto.ScheduleResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ════════════════════════ Create ════════════════════════

func (s *scheduleService) Create(ctx context.Context, userID string, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	name := strings.TrimSpace(req.ScheduleName)

	if err := s.checkNameUnique(ctx, userID, name, ""); err != nil {
		return nil, err
	}
	if err := s.checkSubjectsOwned(ctx, userID, req.SubjectIDs); err != nil {
		return nil, err
	}

	schedule := &model.Schedule{
		UserID:       userID,
		ScheduleName: name,
		SubjectIDs:   model.StringArray(req.SubjectIDs),
		ViewDays:     model.StringArray(req.ViewDays),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if schedule.SubjectIDs == nil {
		schedule.SubjectIDs = model.StringArray{}
	}
	if len(schedule.ViewDays) == 0 {
		schedule.ViewDays = model.StringArray(defaultViewDays)
	}
	if schedule.StartTime == "" {
		schedule.StartTime = defaultStartTime
	}
	if schedule.EndTime == "" {
		schedule.EndTime = defaultEndTime
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建课表失败", zap.Error(err))
		return nil, err
	}

	return toScheduleResponse(schedule), nil
}

// ════════════════════════ GetByID ════════════════════════

func (s *scheduleService) GetByID(ctx context.Context, userID, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

// ════════════════════════ List ════════════════════════

func (s *scheduleService) List(ctx context.Context, userID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出课表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ════════════════════════ Update ════════════════════════

func (s *scheduleService) Update(ctx context.Context, userID, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.ScheduleName != nil {
		name := strings.TrimSpace(*req.ScheduleName)
		if !strings.EqualFold(name, schedule.ScheduleName) {
			if err := s.checkNameUnique(ctx, userID, name, id); err != nil {
				return nil, err
			}
		}
		schedule.ScheduleName = name
	}
	if req.SubjectIDs != nil {
		if err := s.checkSubjectsOwned(ctx, userID, *req.SubjectIDs); err != nil {
			return nil, err
		}
		schedule.SubjectIDs = model.StringArray(*req.SubjectIDs)
	}
	if req.ViewDays != nil {
		schedule.ViewDays = model.StringArray(*req.ViewDays)
	}
	if req.StartTime != nil {
		schedule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		schedule.EndTime = *req.EndTime
	}

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("更新课表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toScheduleResponse(schedule), nil
}

// ════════════════════════ Delete ════════════════════════

func (s *scheduleService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询课表失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, userID, id); err != nil {
		s.logger.Error("删除课表失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// checkNameUnique 课表名判重（大小写不敏感），excludeID 用于更新时排除自己
func (s *scheduleService) checkNameUnique(ctx context.Context, userID, name, excludeID string) error {
	schedules, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出课表失败", zap.Error(err))
		return err
	}
	for i := range schedules {
		if schedules[i].ScheduleID == excludeID {
			continue
		}
		if strings.EqualFold(schedules[i].ScheduleName, name) {
			return ErrScheduleNameExists
		}
	}
	return nil
}

// checkSubjectsOwned 校验引用的课程 ID 全部属于该用户
func (s *scheduleService) checkSubjectsOwned(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	subjects, err := s.repo.Subject.ListByIDs(ctx, userID, ids)
	if err != nil {
		s.logger.Error("查询课程失败", zap.Error(err))
		return err
	}

	owned := make(map[string]bool, len(subjects))
	for i := range subjects {
		owned[subjects[i].SubjectID] = true
	}
	for _, id := range ids {
		if !owned[id] {
			return ErrSubjectNotOwned
		}
	}
	return nil
}

// toScheduleResponse 将 model.Schedule 转换为 dto.ScheduleResponse
func toScheduleResponse(sched *model.Schedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:           sched.ScheduleID,
		ScheduleName: sched.ScheduleName,
		SubjectIDs:   []string(sched.SubjectIDs),
		ViewDays:     []string(sched.ViewDays),
		StartTime:    sched.StartTime,
		EndTime:      sched.EndTime,
		CreatedAt:    sched.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    sched.UpdatedAt.Format(time.RFC3339),
	}
}
