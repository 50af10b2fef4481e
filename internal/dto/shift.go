package dto

// ── 班次模板请求 ──

// CreateShiftRequest 创建班次模板请求
type CreateShiftRequest struct {
	Name        string   `json:"name"         binding:"required,min=2,max=100"`
	Description string   `json:"description"  binding:"omitempty,max=500"`
	StartTime   string   `json:"start_time"   binding:"required"`
	EndTime     string   `json:"end_time"     binding:"required"`
	ShiftType   string   `json:"shift_type"   binding:"required,oneof=morning evening night full_day custom"`
	Category    string   `json:"category"     binding:"required,oneof=production delivery lab admin maintenance security"`
	DaysOfWeek  []string `json:"days_of_week" binding:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	MinStaff    int      `json:"min_staff"    binding:"omitempty,min=1"`
	MaxStaff    int      `json:"max_staff"    binding:"omitempty,min=1"`
}

// UpdateShiftRequest 更新班次模板请求（字段可选）
type UpdateShiftRequest struct {
	Name        *string  `json:"name"         binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description"  binding:"omitempty,max=500"`
	StartTime   *string  `json:"start_time"   binding:"omitempty"`
	EndTime     *string  `json:"end_time"     binding:"omitempty"`
	ShiftType   *string  `json:"shift_type"   binding:"omitempty,oneof=morning evening night full_day custom"`
	Category    *string  `json:"category"     binding:"omitempty,oneof=production delivery lab admin maintenance security"`
	DaysOfWeek  []string `json:"days_of_week" binding:"omitempty,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	MinStaff    *int     `json:"min_staff"    binding:"omitempty,min=1"`
	MaxStaff    *int     `json:"max_staff"    binding:"omitempty,min=1"`
	IsActive    *bool    `json:"is_active"`
}

// ShiftListRequest 班次模板列表查询参数
type ShiftListRequest struct {
	Category        string `form:"category" binding:"omitempty,oneof=production delivery lab admin maintenance security"`
	IncludeInactive bool   `form:"include_inactive"`
}

// ── 班次模板响应 ──

// ShiftResponse 班次模板响应
type ShiftResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	ShiftType     string   `json:"shift_type"`
	Category      string   `json:"category"`
	DaysOfWeek    []string `json:"days_of_week"`
	MinStaff      int      `json:"min_staff"`
	MaxStaff      int      `json:"max_staff"`
	IsActive      bool     `json:"is_active"`
	DurationHours float64  `json:"duration_hours"`
	IsOvernight   bool     `json:"is_overnight"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}
