package handler

import "github.com/zyrrhky/schedease/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Subject   *SubjectHandler
	Import    *ImportHandler
	Schedule  *ScheduleHandler
	Timetable *TimetableHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Subject:   NewSubjectHandler(svc.Subject),
		Import:    NewImportHandler(svc.Import),
		Schedule:  NewScheduleHandler(svc.Schedule),
		Timetable: NewTimetableHandler(svc.Timetable),
		Export:    NewExportHandler(svc.Export),
	}
}
