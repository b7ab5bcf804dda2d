package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/zyrrhky/schedease/internal/service"
	"github.com/zyrrhky/schedease/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX 导出课表为 Excel
// GET /api/v1/schedules/:id/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportICS 导出课表为 iCalendar（以每周重复事件表示）
// GET /api/v1/schedules/:id/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 14001, "课表不存在")
	case errors.Is(err, service.ErrExportNoSubjects):
		response.BadRequest(c, 16001, "课表中没有可导出的课程")
	default:
		response.InternalError(c)
	}
}

// writeDownload 设置文件下载响应头并写出内容
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}
