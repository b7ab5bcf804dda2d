package service

import (
	"go.uber.org/zap"

	"github.com/zyrrhky/schedease/config"
	"github.com/zyrrhky/schedease/internal/repository"
	"github.com/zyrrhky/schedease/pkg/jwt"
	"github.com/zyrrhky/schedease/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Subject   SubjectService
	Import    ImportService
	Schedule  ScheduleService
	Timetable TimetableService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Subject:   NewSubjectService(repo, logger),
		Import:    NewImportService(repo, logger),
		Schedule:  NewScheduleService(repo, logger),
		Timetable: NewTimetableService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}
