package dto

// ── 排班模块请求 ──

// AssignmentInput 排班分配项输入
// Staff 字段在管理员直写路径下可为用户ID、工号或邮箱（由服务层解析）
type AssignmentInput struct {
	Staff     string `json:"staff"`
	ShiftType string `json:"shift_type"`
}

// SubmitScheduleRequest 经理提交排班表（进入审批流）
type SubmitScheduleRequest struct {
	WeekStart    string            `json:"week_start"    binding:"required"`
	StaffGroup   string            `json:"staff_group"   binding:"omitempty,oneof=field lab"`
	MorningStart string            `json:"morning_start" binding:"required"`
	MorningEnd   string            `json:"morning_end"   binding:"required"`
	EveningStart string            `json:"evening_start" binding:"required"`
	EveningEnd   string            `json:"evening_end"   binding:"required"`
	Assignments  []AssignmentInput `json:"assignments"`
	ManagerNotes string            `json:"manager_notes" binding:"omitempty,max=500"`
}

// UpsertScheduleRequest 管理员直写排班表（直接生效）
type UpsertScheduleRequest struct {
	WeekStart    string            `json:"week_start"    binding:"required"`
	StaffGroup   string            `json:"staff_group"   binding:"omitempty,oneof=field lab"`
	MorningStart string            `json:"morning_start" binding:"required"`
	MorningEnd   string            `json:"morning_end"   binding:"required"`
	EveningStart string            `json:"evening_start" binding:"required"`
	EveningEnd   string            `json:"evening_end"   binding:"required"`
	Assignments  []AssignmentInput `json:"assignments"`
}

// ReviewScheduleRequest 审批/驳回排班表请求
type ReviewScheduleRequest struct {
	AdminNotes string `json:"admin_notes" binding:"omitempty,max=500"`
}

// OverrideRequest 新增单日覆盖请求
// Staff 与分配项一样可为用户ID、工号或邮箱（由服务层解析）
type OverrideRequest struct {
	WeekStart  string `json:"week_start"  binding:"required"`
	StaffGroup string `json:"staff_group" binding:"omitempty,oneof=field lab"`
	Date       string `json:"date"        binding:"required"`
	Staff      string `json:"staff"       binding:"required"`
	ShiftType  string `json:"shift_type"  binding:"required,oneof=Morning Evening"`
}

// RemoveOverrideRequest 移除单日覆盖请求
type RemoveOverrideRequest struct {
	WeekStart  string `json:"week_start"  binding:"required"`
	StaffGroup string `json:"staff_group" binding:"omitempty,oneof=field lab"`
	Date       string `json:"date"        binding:"required"`
	Staff      string `json:"staff"       binding:"required"`
}

// UpdateAssignmentsRequest 整体替换分配列表请求
type UpdateAssignmentsRequest struct {
	Assignments []AssignmentInput `json:"assignments" binding:"required"`
}

// ScheduleListRequest 按日期范围查询排班表
type ScheduleListRequest struct {
	From       string `form:"from"  binding:"omitempty"`
	To         string `form:"to"    binding:"omitempty"`
	StaffGroup string `form:"group" binding:"omitempty,oneof=field lab"`
}

// ScheduleByWeekRequest 按周起始查询排班表
type ScheduleByWeekRequest struct {
	WeekStart  string `form:"week_start" binding:"required"`
	StaffGroup string `form:"group"      binding:"omitempty,oneof=field lab"`
}

// MyScheduleRequest 员工查询个人生效排班
type MyScheduleRequest struct {
	WeekStart string `form:"week_start" binding:"omitempty"`
}

// ── 排班模块响应 ──

// ScheduleResponse 周排班表响应
type ScheduleResponse struct {
	ID           string               `json:"id"`
	WeekStart    string               `json:"week_start"`
	StaffGroup   string               `json:"staff_group"`
	MorningStart string               `json:"morning_start"`
	MorningEnd   string               `json:"morning_end"`
	EveningStart string               `json:"evening_start"`
	EveningEnd   string               `json:"evening_end"`
	Status       string               `json:"status"`
	Origin       string               `json:"origin"`
	ManagerNotes string               `json:"manager_notes,omitempty"`
	AdminNotes   string               `json:"admin_notes,omitempty"`
	SubmittedAt  *string              `json:"submitted_at,omitempty"`
	ApprovedAt   *string              `json:"approved_at,omitempty"`
	ApprovedBy   *string              `json:"approved_by,omitempty"`
	RejectedAt   *string              `json:"rejected_at,omitempty"`
	RejectedBy   *string              `json:"rejected_by,omitempty"`
	Assignments  []AssignmentResponse `json:"assignments"`
	Overrides    []OverrideResponse   `json:"overrides"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

// AssignmentResponse 排班分配项响应
type AssignmentResponse struct {
	StaffID   string      `json:"staff_id"`
	Staff     *StaffBrief `json:"staff,omitempty"`
	ShiftType string      `json:"shift_type"`
}

// OverrideResponse 单日覆盖响应
type OverrideResponse struct {
	Date      string      `json:"date"`
	StaffID   string      `json:"staff_id"`
	Staff     *StaffBrief `json:"staff,omitempty"`
	ShiftType string      `json:"shift_type"`
}

// OverrideListResponse 覆盖操作响应（含剩余覆盖列表）
type OverrideListResponse struct {
	Removed   int                `json:"removed,omitempty"`
	Overrides []OverrideResponse `json:"overrides"`
}

// EffectiveDayResponse 某日生效排班
// Source: base=整周分配 / override=单日覆盖 / none=当日无排班
type EffectiveDayResponse struct {
	Date       string `json:"date"`
	ShiftType  string `json:"shift_type,omitempty"`
	ShiftStart string `json:"shift_start,omitempty"`
	ShiftEnd   string `json:"shift_end,omitempty"`
	Source     string `json:"source"`
}

// MyScheduleResponse 员工个人周排班响应（覆盖合并后）
type MyScheduleResponse struct {
	WeekStart  string                 `json:"week_start"`
	StaffGroup string                 `json:"staff_group"`
	Days       []EffectiveDayResponse `json:"days"`
}
