package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/model"
)

// ScheduleRepository 课表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, userID, id string) (*model.Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]model.Schedule, error)
	ListContainingSubject(ctx context.Context, userID, subjectID string) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, userID, id string) error
}

// scheduleRepo ScheduleRepository 的 GORM 实现
type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, userID, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND schedule_id = ?", userID, id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListContainingSubject 查询包含指定课程的所有课表（用于删课联动）
func (r *scheduleRepo) ListContainingSubject(ctx context.Context, userID, subjectID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ? = ANY(subject_ids)", userID, subjectID).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND schedule_id = ?", userID, id).
		Delete(&model.Schedule{}).Error
}
