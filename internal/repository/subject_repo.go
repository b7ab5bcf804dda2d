package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zyrrhky/schedease/internal/model"
)

// SubjectRepository 课程数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	BatchCreate(ctx context.Context, subjects []model.Subject) error
	GetByID(ctx context.Context, userID, id string) (*model.Subject, error)
	ListByUser(ctx context.Context, userID string) ([]model.Subject, error)
	ListByUserPaged(ctx context.Context, userID, keyword string, offset, limit int) ([]model.Subject, int64, error)
	ListByIDs(ctx context.Context, userID string, ids []string) ([]model.Subject, error)
	ExistsByTitle(ctx context.Context, userID, title string) (bool, error)
	ExistsByDataID(ctx context.Context, userID, dataID string) (bool, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, userID, id string) error
}

// subjectRepo SubjectRepository 的 GORM 实现
type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) BatchCreate(ctx context.Context, subjects []model.Subject) error {
	if len(subjects) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&subjects).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, userID, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) ListByUser(ctx context.Context, userID string) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) ListByUserPaged(ctx context.Context, userID, keyword string, offset, limit int) ([]model.Subject, int64, error) {
	var subjects []model.Subject
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Subject{}).Where("user_id = ?", userID)
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("subject_title ILIKE ? OR subject_code ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at ASC").
		Find(&subjects).Error; err != nil {
		return nil, 0, err
	}

	return subjects, total, nil
}

func (r *subjectRepo) ListByIDs(ctx context.Context, userID string, ids []string) ([]model.Subject, error) {
	if len(ids) == 0 {
		return []model.Subject{}, nil
	}
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id IN ?", userID, ids).
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// ExistsByTitle 按标题判重（大小写不敏感，首尾空白已由调用方去除）
func (r *subjectRepo) ExistsByTitle(ctx context.Context, userID, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subject{}).
		Where("user_id = ? AND LOWER(subject_title) = LOWER(?)", userID, title).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subjectRepo) ExistsByDataID(ctx context.Context, userID, dataID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subject{}).
		Where("user_id = ? AND data_id = ?", userID, dataID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, id).
		Delete(&model.Subject{}).Error
}
