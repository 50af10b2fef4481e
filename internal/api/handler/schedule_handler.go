package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"latexops/backend/internal/dto"
	"latexops/backend/internal/service"
	"latexops/backend/pkg/response"
)

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Submit 经理提交周排班表（进入审批流）
// POST /api/v1/schedules/manager/submit
func (h *ScheduleHandler) Submit(c *gin.Context) {
	var req dto.SubmitScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	staffGroup, ok := MustGetStaffGroup(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Submit(c.Request.Context(), &req, callerID, staffGroup)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, result)
}

// Upsert 管理员直写周排班表（立即生效）
// POST /api/v1/schedules
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	var req dto.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.DirectUpsert(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListPending 待审批排班表列表
// GET /api/v1/schedules/admin/pending
func (h *ScheduleHandler) ListPending(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, total, err := h.scheduleSvc.ListPending(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKPage(c, result, total, req.GetPage(), req.GetPageSize())
}

// Approve 审批通过排班表
// POST /api/v1/schedules/admin/:id/approve
func (h *ScheduleHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	var req dto.ReviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Approve(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject 驳回排班表
// POST /api/v1/schedules/admin/:id/reject
func (h *ScheduleHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	var req dto.ReviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Reject(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// List 按日期范围查询排班表
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// GetByWeek 按周起始查询排班表
// GET /api/v1/schedules/week
func (h *ScheduleHandler) GetByWeek(c *gin.Context) {
	var req dto.ScheduleByWeekRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.GetByWeek(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetByID 排班表详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	result, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// ReplaceAssignments 整体替换排班分配
// PUT /api/v1/schedules/:id/assignments
func (h *ScheduleHandler) ReplaceAssignments(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "排班表ID不能为空")
		return
	}

	var req dto.UpdateAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.ReplaceAssignments(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// AddOverride 新增单日覆盖
// POST /api/v1/schedules/overrides
func (h *ScheduleHandler) AddOverride(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.AddOverride(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// RemoveOverride 移除单日覆盖
// DELETE /api/v1/schedules/overrides
func (h *ScheduleHandler) RemoveOverride(c *gin.Context) {
	var req dto.RemoveOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.RemoveOverride(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// MySchedule 员工查询本人生效排班
// GET /api/v1/schedules/my
func (h *ScheduleHandler) MySchedule(c *gin.Context) {
	var req dto.MyScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	staffGroup, ok := MustGetStaffGroup(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.MySchedule(c.Request.Context(), userID, staffGroup, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// handleScheduleError 统一处理排班模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var unresolved *service.UnresolvedStaffError
	switch {
	case errors.As(err, &unresolved):
		response.ErrorWithDetails(c, http.StatusBadRequest, 13102, "存在无法解析的员工标识", unresolved.Error())
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "排班表不存在")
	case errors.Is(err, service.ErrSchedulePastWeek):
		response.BadRequest(c, 13103, "不能为过去的周创建排班表")
	case errors.Is(err, service.ErrScheduleNotPending):
		response.BadRequest(c, 13104, "排班表不在待审批状态")
	case errors.Is(err, service.ErrAssignmentInvalid):
		response.BadRequest(c, 13105, "排班分配项不完整")
	case errors.Is(err, service.ErrShiftTimeInvalid):
		response.BadRequest(c, 13106, "班次时间格式无效，应为 HH:MM")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 13107, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrOverrideDateOutOfWeek):
		response.BadRequest(c, 13108, "覆盖日期不在排班周范围内")
	case errors.Is(err, service.ErrStaffNotFound):
		response.BadRequest(c, 13110, "员工不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
