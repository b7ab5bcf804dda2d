package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zyrrhky/schedease/internal/service"
	"github.com/zyrrhky/schedease/pkg/response"
)

// TimetableHandler 时间网格模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// GetTimetable 渲染课表的时间网格视图（含冲突与空隙分析）
// GET /api/v1/schedules/:id/timetable
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.timetableSvc.GetTimetable(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.NotFound(c, 14001, "课表不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Slots 返回全天的半小时时间槽定义（07:00–21:00）
// GET /api/v1/timetable/slots
func (h *TimetableHandler) Slots(c *gin.Context) {
	response.OK(c, h.timetableSvc.Slots())
}
