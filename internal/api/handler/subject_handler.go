package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/service"
	"github.com/zyrrhky/schedease/pkg/response"
)

// SubjectHandler 课程模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// Create 添加课程
// POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.subjectSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrSubjectTitleExists) {
			response.Conflict(c, 12002, "同名课程已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get 获取单个课程
// GET /api/v1/subjects/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.subjectSvc.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 分页查询课程列表，支持 keyword 模糊搜索
// GET /api/v1/subjects?page=1&page_size=20&keyword=xxx
func (h *SubjectHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ListSubjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.subjectSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新课程
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.subjectSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrSubjectTitleExists):
			response.Conflict(c, 12002, "同名课程已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除课程，并从所有引用它的课表中移除
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Filter 按最小空隙、排除日、上课形式组合筛选课程
// POST /api/v1/subjects/filter
func (h *SubjectHandler) Filter(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.FilterSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.subjectSvc.Filter(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
