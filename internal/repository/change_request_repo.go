package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"latexops/backend/internal/model"
)

// ChangeRequestRepository 换班申请数据访问接口
type ChangeRequestRepository interface {
	Create(ctx context.Context, request *model.ScheduleChangeRequest) error
	GetByID(ctx context.Context, id string) (*model.ScheduleChangeRequest, error)
	// FindPendingByStaffDate 查找某员工某日期的待审批申请（用于查重）
	FindPendingByStaffDate(ctx context.Context, staffID string, date time.Time) (*model.ScheduleChangeRequest, error)
	Update(ctx context.Context, request *model.ScheduleChangeRequest) error
	Delete(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]model.ScheduleChangeRequest, error)
	ListByStaff(ctx context.Context, staffID string) ([]model.ScheduleChangeRequest, error)
	List(ctx context.Context, status string, from, to *time.Time) ([]model.ScheduleChangeRequest, error)
}

// changeRequestRepo ChangeRequestRepository 的 GORM 实现
type changeRequestRepo struct {
	db *gorm.DB
}

// NewChangeRequestRepo 创建 ChangeRequestRepository 实例
func NewChangeRequestRepo(db *gorm.DB) ChangeRequestRepository {
	return &changeRequestRepo{db: db}
}

func (r *changeRequestRepo) Create(ctx context.Context, request *model.ScheduleChangeRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *changeRequestRepo) GetByID(ctx context.Context, id string) (*model.ScheduleChangeRequest, error) {
	var request model.ScheduleChangeRequest
	err := r.db.WithContext(ctx).
		Preload("Staff").Preload("Reviewer").
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *changeRequestRepo) FindPendingByStaffDate(ctx context.Context, staffID string, date time.Time) (*model.ScheduleChangeRequest, error) {
	var request model.ScheduleChangeRequest
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND request_date = ? AND status = ?",
			staffID, date, model.ChangeRequestPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *changeRequestRepo) Update(ctx context.Context, request *model.ScheduleChangeRequest) error {
	return r.db.WithContext(ctx).
		Omit("Staff", "Reviewer").
		Save(request).Error
}

func (r *changeRequestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("request_id = ?", id).
		Delete(&model.ScheduleChangeRequest{}).Error
}

func (r *changeRequestRepo) ListPending(ctx context.Context) ([]model.ScheduleChangeRequest, error) {
	var requests []model.ScheduleChangeRequest
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("status = ?", model.ChangeRequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *changeRequestRepo) ListByStaff(ctx context.Context, staffID string) ([]model.ScheduleChangeRequest, error) {
	var requests []model.ScheduleChangeRequest
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("staff_id = ?", staffID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *changeRequestRepo) List(ctx context.Context, status string, from, to *time.Time) ([]model.ScheduleChangeRequest, error) {
	var requests []model.ScheduleChangeRequest
	db := r.db.WithContext(ctx).
		Preload("Staff").Preload("Reviewer")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if from != nil {
		db = db.Where("request_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("request_date <= ?", *to)
	}
	err := db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}
