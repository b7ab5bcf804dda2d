package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/service"
	"github.com/zyrrhky/schedease/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create 创建课表
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNameExists):
			response.Conflict(c, 14002, "同名课表已存在")
		case errors.Is(err, service.ErrSubjectNotOwned):
			response.BadRequest(c, 14003, "课表引用了不存在的课程")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Get 获取单个课表
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.GetByID(c.Request.Context(), userID, c.Param("id"))
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

// List 查询当前用户的全部课表
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.scheduleSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Update 更新课表
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.NotFound(c, 14001, "课表不存在")
		case errors.Is(err, service.ErrScheduleNameExists):
			response.Conflict(c, 14002, "同名课表已存在")
		case errors.Is(err, service.ErrSubjectNotOwned):
			response.BadRequest(c, 14003, "课表引用了不存在的课程")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除课表
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.NotFound(c, 14001, "课表不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
