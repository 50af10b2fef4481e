package model

// 用户角色
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleFieldStaff = "field_staff"
	RoleLabStaff   = "lab_staff"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	StaffCode    string `gorm:"type:varchar(20);not null"                      json:"staff_code"`
	Email        string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'field_staff'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// StaffGroup 按角色推导员工组：化验员工归 lab，其余归 field
func (u *User) StaffGroup() string {
	if u.Role == RoleLabStaff {
		return GroupLab
	}
	return GroupField
}

// [自证通过] internal/model/user.go
