package dto

// ── 换班申请请求 ──

// CreateChangeRequestRequest 员工提交换班申请
type CreateChangeRequestRequest struct {
	RequestDate    string `json:"request_date"    binding:"required"`
	CurrentShift   string `json:"current_shift"   binding:"required,oneof=Morning Evening"`
	RequestedShift string `json:"requested_shift" binding:"required,oneof=Morning Evening Off"`
	Reason         string `json:"reason"          binding:"required,min=2,max=500"`
	Priority       string `json:"priority"        binding:"omitempty,oneof=normal urgent"`
	AffectsOthers  bool   `json:"affects_others"`
}

// UpdateChangeRequestRequest 员工修改待审批的换班申请（字段可选）
type UpdateChangeRequestRequest struct {
	RequestDate    *string `json:"request_date"    binding:"omitempty"`
	CurrentShift   *string `json:"current_shift"   binding:"omitempty,oneof=Morning Evening"`
	RequestedShift *string `json:"requested_shift" binding:"omitempty,oneof=Morning Evening Off"`
	Reason         *string `json:"reason"          binding:"omitempty,min=2,max=500"`
}

// ReviewChangeRequestRequest 经理/管理员处理换班申请
type ReviewChangeRequestRequest struct {
	Response string `json:"response" binding:"omitempty,max=500"`
}

// ChangeRequestListRequest 换班申请列表查询参数（经理/管理员）
type ChangeRequestListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	From   string `form:"from"   binding:"omitempty"`
	To     string `form:"to"     binding:"omitempty"`
}

// ── 换班申请响应 ──

// ChangeRequestResponse 换班申请响应
type ChangeRequestResponse struct {
	ID              string      `json:"id"`
	Staff           *StaffBrief `json:"staff,omitempty"`
	RequestDate     string      `json:"request_date"`
	CurrentShift    string      `json:"current_shift"`
	RequestedShift  string      `json:"requested_shift"`
	Reason          string      `json:"reason"`
	Status          string      `json:"status"`
	ManagerResponse string      `json:"manager_response,omitempty"`
	ReviewedBy      *StaffBrief `json:"reviewed_by,omitempty"`
	ReviewedAt      *string     `json:"reviewed_at,omitempty"`
	Priority        string      `json:"priority"`
	AffectsOthers   bool        `json:"affects_others"`
	IsEditable      bool        `json:"is_editable"`
	IsExpired       bool        `json:"is_expired"`
	CreatedAt       string      `json:"created_at"`
}
