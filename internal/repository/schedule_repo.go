package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"latexops/backend/internal/model"
)

// ScheduleRepository 周排班表数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.WeeklySchedule) error
	GetByID(ctx context.Context, id string) (*model.WeeklySchedule, error)
	GetByWeek(ctx context.Context, weekStart time.Time, staffGroup string) (*model.WeeklySchedule, error)
	List(ctx context.Context, from, to *time.Time, staffGroup string) ([]model.WeeklySchedule, error)
	ListPending(ctx context.Context, offset, limit int) ([]model.WeeklySchedule, int64, error)
	Update(ctx context.Context, schedule *model.WeeklySchedule) error
	// Upsert 按 (week_start, staff_group) 写入排班表并整体替换分配列表（单事务）
	Upsert(ctx context.Context, schedule *model.WeeklySchedule, assignments []model.ShiftAssignment) (*model.WeeklySchedule, error)
	// ReplaceAssignments 整体替换某排班表的分配列表
	ReplaceAssignments(ctx context.Context, scheduleID string, assignments []model.ShiftAssignment) error
	// ReplaceOverride 写入单日覆盖，若同 (日期, 员工) 已有覆盖则先删除（后写覆盖先写）
	ReplaceOverride(ctx context.Context, scheduleID string, override model.ShiftOverride) error
	// DeleteOverride 删除匹配 (日期, 员工) 的覆盖，返回删除条数
	DeleteOverride(ctx context.Context, scheduleID string, date time.Time, staffID string) (int64, error)
}

// scheduleRepo ScheduleRepository 的 GORM 实现
type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.WeeklySchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.WeeklySchedule, error) {
	var schedule model.WeeklySchedule
	err := r.db.WithContext(ctx).
		Preload("Assignments").Preload("Assignments.Staff").
		Preload("Overrides").Preload("Overrides.Staff").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) GetByWeek(ctx context.Context, weekStart time.Time, staffGroup string) (*model.WeeklySchedule, error) {
	var schedule model.WeeklySchedule
	err := r.db.WithContext(ctx).
		Preload("Assignments").Preload("Assignments.Staff").
		Preload("Overrides").Preload("Overrides.Staff").
		Where("week_start = ? AND staff_group = ?", weekStart, staffGroup).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, from, to *time.Time, staffGroup string) ([]model.WeeklySchedule, error) {
	var schedules []model.WeeklySchedule
	db := r.db.WithContext(ctx).
		Preload("Assignments").
		Preload("Overrides").
		Where("staff_group = ?", staffGroup)
	if from != nil {
		db = db.Where("week_start >= ?", *from)
	}
	if to != nil {
		db = db.Where("week_start <= ?", *to)
	}
	err := db.Order("week_start DESC").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListPending(ctx context.Context, offset, limit int) ([]model.WeeklySchedule, int64, error) {
	var schedules []model.WeeklySchedule
	var total int64

	db := r.db.WithContext(ctx).Model(&model.WeeklySchedule{}).
		Where("status = ?", model.ScheduleStatusPending)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Assignments").Preload("Assignments.Staff").
		Offset(offset).Limit(limit).
		Order("submitted_at DESC").
		Find(&schedules).Error
	return schedules, total, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.WeeklySchedule) error {
	return r.db.WithContext(ctx).
		Omit("Assignments", "Overrides").
		Save(schedule).Error
}

func (r *scheduleRepo) Upsert(ctx context.Context, schedule *model.WeeklySchedule, assignments []model.ShiftAssignment) (*model.WeeklySchedule, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.WeeklySchedule
		err := tx.Where("week_start = ? AND staff_group = ?", schedule.WeekStart, schedule.StaffGroup).
			First(&existing).Error
		switch {
		case err == nil:
			// 已存在：更新父表字段并整体替换分配
			schedule.ScheduleID = existing.ScheduleID
			schedule.CreatedAt = existing.CreatedAt
			if err := tx.Omit("Assignments", "Overrides").Save(schedule).Error; err != nil {
				return err
			}
			if err := tx.Where("schedule_id = ?", existing.ScheduleID).
				Delete(&model.ShiftAssignment{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit("Assignments", "Overrides").Create(schedule).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if len(assignments) == 0 {
			return nil
		}
		for i := range assignments {
			assignments[i].ScheduleID = schedule.ScheduleID
		}
		return tx.Create(&assignments).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, schedule.ScheduleID)
}

func (r *scheduleRepo) ReplaceAssignments(ctx context.Context, scheduleID string, assignments []model.ShiftAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", scheduleID).
			Delete(&model.ShiftAssignment{}).Error; err != nil {
			return err
		}
		if len(assignments) == 0 {
			return nil
		}
		for i := range assignments {
			assignments[i].ScheduleID = scheduleID
		}
		return tx.Create(&assignments).Error
	})
}

func (r *scheduleRepo) ReplaceOverride(ctx context.Context, scheduleID string, override model.ShiftOverride) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ? AND override_date = ? AND staff_id = ?",
			scheduleID, override.OverrideDate, override.StaffID).
			Delete(&model.ShiftOverride{}).Error; err != nil {
			return err
		}
		override.ScheduleID = scheduleID
		return tx.Create(&override).Error
	})
}

func (r *scheduleRepo) DeleteOverride(ctx context.Context, scheduleID string, date time.Time, staffID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("schedule_id = ? AND override_date = ? AND staff_id = ?", scheduleID, date, staffID).
		Delete(&model.ShiftOverride{})
	return result.RowsAffected, result.Error
}
