package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zyrrhky/schedease/internal/dto"
	"github.com/zyrrhky/schedease/internal/service"
	"github.com/zyrrhky/schedease/pkg/response"
)

// ImportHandler 课程导入模块 HTTP 处理器
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler 创建 ImportHandler
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// Paste 从选课系统粘贴的纯文本批量导入课程
// POST /api/v1/import/paste
func (h *ImportHandler) Paste(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportPasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.importSvc.ImportPaste(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrImportNoData) {
			response.BadRequest(c, 13001, "未识别出任何课程记录")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// CSV 从 CSV 文本批量导入课程
// POST /api/v1/import/csv
func (h *ImportHandler) CSV(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ImportCSVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.importSvc.ImportCSV(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrImportNoData) {
			response.BadRequest(c, 13001, "未识别出任何课程记录")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}
