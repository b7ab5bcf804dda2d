package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/model"
	"github.com/zyrrhky/schedease/internal/parse"
	"github.com/zyrrhky/schedease/internal/repository"
	"github.com/zyrrhky/schedease/internal/timegrid"
)

// ── 课程模块业务错误 ──

var (
	ErrSubjectNotFound    = errors.New("课程不存在")
	ErrSubjectTitleExists = errors.New("同名课程已存在")
)

// SubjectService 课程业务接口
type SubjectService interface {
	Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, userID, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context, userID string, req *dto.ListSubjectsRequest) ([]dto.SubjectResponse, int64, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, userID, id string) error
	Filter(ctx context.Context, userID string, req *dto.FilterSubjectsRequest) (*dto.FilterSubjectsResponse, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

// ════════════════════════ Create ════════════════════════

func (s *subjectService) Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	title := strings.TrimSpace(req.SubjectTitle)

	// 标题判重（大小写不敏感）
	exists, err := s.repo.Subject.ExistsByTitle(ctx, userID, title)
	if err != nil {
		s.logger.Error("标题判重失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrSubjectTitleExists
	}

	dataID, err := s.mintDataID(ctx, userID)
	if err != nil {
		return nil, err
	}

	modality := req.Modality
	if modality == "" {
		// 未显式指定时用启发式扫描给出缺省值
		modality = string(parse.InferModality(req.Room, req.Schedule, title, req.SubjectCode, req.OfferingDept, req.Section))
	}

	subject := &model.Subject{
		UserID:        userID,
		DataID:        dataID,
		Number:        req.Number,
		OfferingDept:  req.OfferingDept,
		SubjectCode:   req.SubjectCode,
		SubjectTitle:  title,
		Section:       req.Section,
		Schedule:      req.Schedule,
		Room:          req.Room,
		CreditedUnits: req.CreditedUnits,
		TotalSlots:    req.TotalSlots,
		Enrolled:      req.Enrolled,
		Assessed:      req.Assessed,
		IsClosed:      req.IsClosed,
		Modality:      modality,
	}

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

// ════════════════════════ GetByID ════════════════════════

func (s *subjectService) GetByID(ctx context.Context, userID, id string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

// ════════════════════════ List ════════════════════════

func (s *subjectService) List(ctx context.Context, userID string, req *dto.ListSubjectsRequest) ([]dto.SubjectResponse, int64, error) {
	subjects, total, err := s.repo.Subject.ListByUserPaged(ctx, userID, strings.TrimSpace(req.Keyword), req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, total, nil
}

// ════════════════════════ Update ════════════════════════

func (s *subjectService) Update(ctx context.Context, userID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 应用更新字段（仅更新非 nil 字段）
	if req.SubjectTitle != nil {
		title := strings.TrimSpace(*req.SubjectTitle)
		if !strings.EqualFold(title, subject.SubjectTitle) {
			exists, err := s.repo.Subject.ExistsByTitle(ctx, userID, title)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrSubjectTitleExists
			}
		}
		subject.SubjectTitle = title
	}
	if req.Number != nil {
		subject.Number = *req.Number
	}
	if req.OfferingDept != nil {
		subject.OfferingDept = *req.OfferingDept
	}
	if req.SubjectCode != nil {
		subject.SubjectCode = *req.SubjectCode
	}
	if req.Section != nil {
		subject.Section = *req.Section
	}
	if req.Schedule != nil {
		subject.Schedule = *req.Schedule
	}
	if req.Room != nil {
		subject.Room = *req.Room
	}
	if req.CreditedUnits != nil {
		subject.CreditedUnits = req.CreditedUnits
	}
	if req.TotalSlots != nil {
		subject.TotalSlots = req.TotalSlots
	}
	if req.Enrolled != nil {
		subject.Enrolled = req.Enrolled
	}
	if req.Assessed != nil {
		subject.Assessed = req.Assessed
	}
	if req.IsClosed != nil {
		subject.IsClosed = *req.IsClosed
	}
	if req.Modality != nil {
		subject.Modality = *req.Modality
	}

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

// ════════════════════════ Delete ════════════════════════

// Delete 删除课程并把它从该用户的所有课表中联动移除
func (s *subjectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.Subject.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Subject.Delete(ctx, userID, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 从所有引用该课程的课表中移除
	schedules, err := s.repo.Schedule.ListContainingSubject(ctx, userID, id)
	if err != nil {
		s.logger.Error("查询引用课表失败", zap.String("subject_id", id), zap.Error(err))
		return err
	}
	for i := range schedules {
		sched := &schedules[i]
		sched.SubjectIDs = sched.SubjectIDs.Without(id)
		if err := s.repo.Schedule.Update(ctx, sched); err != nil {
			s.logger.Error("课表联动更新失败",
				zap.String("schedule_id", sched.ScheduleID), zap.Error(err))
			return err
		}
	}

	return nil
}

// ════════════════════════ Filter ════════════════════════
//
// 三个筛选条件为与关系：
//   - min_break：同日相邻课段的最小间隔须 ≥ N 分钟（无同日相邻课段视为通过）
//   - exclude_days：任一课段落在被排除的星期则淘汰
//   - class_types：存储的 modality 优先；unknown 时回退启发式扫描；
//     仍为 unknown 且筛选激活时按不匹配处理

func (s *subjectService) Filter(ctx context.Context, userID string, req *dto.FilterSubjectsRequest) (*dto.FilterSubjectsResponse, error) {
	subjects, err := s.repo.Subject.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	typeSet := make(map[string]bool, len(req.ClassTypes))
	for _, t := range req.ClassTypes {
		typeSet[t] = true
	}

	matched := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		sub := &subjects[i]
		intervals := parse.ParseScheduleString(sub.Schedule)

		if req.MinBreak > 0 && !timegrid.MeetsMinBreak(intervals, req.MinBreak) {
			continue
		}
		if len(req.ExcludeDays) > 0 && timegrid.HasAnyDay(intervals, req.ExcludeDays) {
			continue
		}
		if len(typeSet) > 0 {
			modality := parse.ModalityFromString(sub.Modality)
			if modality == parse.ModalityUnknown {
				modality = parse.InferModality(sub.Room, sub.Schedule, sub.SubjectTitle, sub.SubjectCode, sub.OfferingDept, sub.Section)
			}
			if !typeSet[string(modality)] {
				continue
			}
		}

		matched = append(matched, *toSubjectResponse(sub))
	}

	return &dto.FilterSubjectsResponse{
		Subjects: matched,
		Matched:  len(subjects) == 0 || len(matched) > 0,
	}, nil
}

// ── 内部辅助方法 ──

// mintDataID 铸造用户内唯一的 data_id
func (s *subjectService) mintDataID(ctx context.Context, userID string) (string, error) {
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		exists, err := s.repo.Subject.ExistsByDataID(ctx, userID, id)
		if err != nil {
			s.logger.Error("data_id 判重失败", zap.Error(err))
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	// UUID 碰撞三次在实践中不会发生；直接返回新值
	return uuid.NewString(), nil
}

// toSubjectResponse 将 model.Subject 转换为 dto.SubjectResponse
func toSubjectResponse(sub *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:            sub.SubjectID,
		DataID:        sub.DataID,
		Number:        sub.Number,
		OfferingDept:  sub.OfferingDept,
		SubjectCode:   sub.SubjectCode,
		SubjectTitle:  sub.SubjectTitle,
		Section:       sub.Section,
		Schedule:      sub.Schedule,
		Room:          sub.Room,
		CreditedUnits: sub.CreditedUnits,
		TotalSlots:    sub.TotalSlots,
		Enrolled:      sub.Enrolled,
		Assessed:      sub.Assessed,
		IsClosed:      sub.IsClosed,
		Modality:      sub.Modality,
		CreatedAt:     sub.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     sub.UpdatedAt.Format(time.RFC3339),
	}
}
