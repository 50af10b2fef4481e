package dto

// ── 用户模块请求 ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role  string `form:"role"  binding:"omitempty,oneof=admin manager field_staff lab_staff"`
	Group string `form:"group" binding:"omitempty,oneof=field lab"`
	PaginationRequest
}

// CreateUserRequest 创建员工请求（管理员）
type CreateUserRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	StaffCode string `json:"staff_code" binding:"required,min=2,max=20"`
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=8,max=64"`
	Role      string `json:"role"       binding:"required,oneof=admin manager field_staff lab_staff"`
}
