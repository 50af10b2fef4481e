package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"latexops/backend/internal/dto"
	"latexops/backend/internal/model"
	pkgerrors "latexops/backend/pkg/errors"
)

// ── 测试辅助 ──

func setupTestChangeRequestService() (ChangeRequestService, ScheduleService, *testRepos) {
	repos := newTestRepos()
	cfg := testConfig()
	repoAgg := repos.toRepository()
	logger := zap.NewNop()
	scheduleSvc := NewScheduleService(cfg, repoAgg, logger)
	svc := NewChangeRequestService(cfg, repoAgg, scheduleSvc, logger)
	return svc, scheduleSvc, repos
}

func tomorrowStr() string {
	return startOfDay(time.Now()).AddDate(0, 0, 1).Format("2006-01-02")
}

func createReq(dateStr string) *dto.CreateChangeRequestRequest {
	return &dto.CreateChangeRequestRequest{
		RequestDate:    dateStr,
		CurrentShift:   model.ShiftMorning,
		RequestedShift: model.ShiftEvening,
		Reason:         "家中有事需要调班",
	}
}

// ════════════════════════════════════════════════════════════
// Create 测试
// ════════════════════════════════════════════════════════════

func TestChangeRequestService_Create_Success(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	resp, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if resp.Status != model.ChangeRequestPending {
		t.Errorf("期望 status=pending，实际=%s", resp.Status)
	}
	if resp.Priority != model.PriorityNormal {
		t.Errorf("期望默认 priority=normal，实际=%s", resp.Priority)
	}
	if !resp.IsEditable {
		t.Error("未来日期的待审批申请应可编辑")
	}
	if resp.IsExpired {
		t.Error("未来日期的申请不应过期")
	}
}

func TestChangeRequestService_Create_TooSoon(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	// 今天不行
	today := startOfDay(time.Now()).Format("2006-01-02")
	if _, err := svc.Create(context.Background(), createReq(today), uuidStaff1); !errors.Is(err, ErrChangeRequestTooSoon) {
		t.Errorf("期望 ErrChangeRequestTooSoon，实际: %v", err)
	}

	// 昨天更不行
	yesterday := startOfDay(time.Now()).AddDate(0, 0, -1).Format("2006-01-02")
	if _, err := svc.Create(context.Background(), createReq(yesterday), uuidStaff1); !errors.Is(err, ErrChangeRequestTooSoon) {
		t.Errorf("期望 ErrChangeRequestTooSoon，实际: %v", err)
	}
}

func TestChangeRequestService_Create_WindowBoundary(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	// 上限当天（今天+14天）允许
	maxDate := startOfDay(time.Now()).AddDate(0, 0, 14).Format("2006-01-02")
	if _, err := svc.Create(context.Background(), createReq(maxDate), uuidStaff1); err != nil {
		t.Errorf("今天+14天应允许: %v", err)
	}

	// 超出一天拒绝
	tooFar := startOfDay(time.Now()).AddDate(0, 0, 15).Format("2006-01-02")
	if _, err := svc.Create(context.Background(), createReq(tooFar), uuidStaff2); !errors.Is(err, ErrChangeRequestTooFar) {
		t.Errorf("期望 ErrChangeRequestTooFar，实际: %v", err)
	}
}

func TestChangeRequestService_Create_DuplicatePending(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	if _, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1); !errors.Is(err, ErrChangeRequestExists) {
		t.Errorf("期望 ErrChangeRequestExists，实际: %v", err)
	}

	// 不同员工同日期不冲突
	if _, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff2); err != nil {
		t.Errorf("不同员工同日期应允许: %v", err)
	}
}

func TestChangeRequestService_Create_SameShift(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	req := createReq(tomorrowStr())
	req.RequestedShift = req.CurrentShift
	if _, err := svc.Create(context.Background(), req, uuidStaff1); !errors.Is(err, ErrChangeRequestSameShift) {
		t.Errorf("期望 ErrChangeRequestSameShift，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Update / Cancel 测试
// ════════════════════════════════════════════════════════════

func TestChangeRequestService_Update_OwnPendingOnly(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 他人不能修改
	newReason := "换个理由"
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateChangeRequestRequest{Reason: &newReason}, uuidStaff2); !errors.Is(err, pkgerrors.ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
	}

	// 本人可修改
	resp, err := svc.Update(context.Background(), created.ID, &dto.UpdateChangeRequestRequest{Reason: &newReason}, uuidStaff1)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Reason != newReason {
		t.Errorf("期望 reason 更新，实际=%s", resp.Reason)
	}
}

func TestChangeRequestService_Update_DateRevalidated(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 改到窗口外的日期应被拒绝
	tooFar := startOfDay(time.Now()).AddDate(0, 0, 20).Format("2006-01-02")
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateChangeRequestRequest{RequestDate: &tooFar}, uuidStaff1); !errors.Is(err, ErrChangeRequestTooFar) {
		t.Errorf("期望 ErrChangeRequestTooFar，实际: %v", err)
	}

	// 改到已有待审批申请的日期应冲突
	otherDate := startOfDay(time.Now()).AddDate(0, 0, 3).Format("2006-01-02")
	if _, err := svc.Create(context.Background(), createReq(otherDate), uuidStaff1); err != nil {
		t.Fatalf("第二条 Create 应成功: %v", err)
	}
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateChangeRequestRequest{RequestDate: &otherDate}, uuidStaff1); !errors.Is(err, ErrChangeRequestExists) {
		t.Errorf("期望 ErrChangeRequestExists，实际: %v", err)
	}
}

func TestChangeRequestService_Update_PastDateRejected(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	// 直接落库一条申请日期已过的待审批申请
	expired := &model.ScheduleChangeRequest{
		StaffID:        uuidStaff1,
		RequestDate:    startOfDay(time.Now()).AddDate(0, 0, -1),
		CurrentShift:   model.ShiftMorning,
		RequestedShift: model.ShiftEvening,
		Reason:         "家中有事需要调班",
		Status:         model.ChangeRequestPending,
		Priority:       model.PriorityNormal,
	}
	if err := repos.changeRequest.Create(context.Background(), expired); err != nil {
		t.Fatalf("预置申请应成功: %v", err)
	}

	// 即使只改理由也不允许修改过期申请
	newReason := "改个理由"
	if _, err := svc.Update(context.Background(), expired.RequestID, &dto.UpdateChangeRequestRequest{Reason: &newReason}, uuidStaff1); !errors.Is(err, ErrChangeRequestExpired) {
		t.Errorf("期望 ErrChangeRequestExpired，实际: %v", err)
	}
}

func TestChangeRequestService_Cancel(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 他人不能撤回
	if err := svc.Cancel(context.Background(), created.ID, uuidStaff2); !errors.Is(err, pkgerrors.ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
	}

	if err := svc.Cancel(context.Background(), created.ID, uuidStaff1); err != nil {
		t.Fatalf("Cancel 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID, uuidStaff1, model.RoleFieldStaff); !errors.Is(err, ErrChangeRequestNotFound) {
		t.Errorf("撤回后应查不到，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// Approve / Reject 测试
// ════════════════════════════════════════════════════════════

func TestChangeRequestService_Approve_AppliesOverride(t *testing.T) {
	svc, scheduleSvc, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	resp, err := svc.Approve(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{Response: "同意"}, uuidAdmin)
	if err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}
	if resp.Status != model.ChangeRequestApproved {
		t.Errorf("期望 status=approved，实际=%s", resp.Status)
	}

	// 该周无排班表时应按默认时间窗补建，并落一条覆盖
	tomorrow := startOfDay(time.Now()).AddDate(0, 0, 1)
	schedule, err := repos.schedule.GetByWeek(context.Background(), startOfWeek(tomorrow), model.GroupField)
	if err != nil {
		t.Fatalf("审批后应已补建排班表: %v", err)
	}
	if schedule.Status != model.ScheduleStatusActive {
		t.Errorf("补建排班表应为 active，实际=%s", schedule.Status)
	}
	if schedule.MorningStart != "09:00" || schedule.EveningEnd != "18:00" {
		t.Errorf("补建排班表应按默认时间窗: %s / %s", schedule.MorningStart, schedule.EveningEnd)
	}
	if len(schedule.Overrides) != 1 {
		t.Fatalf("期望1条覆盖，实际=%d", len(schedule.Overrides))
	}
	o := schedule.Overrides[0]
	if o.StaffID != uuidStaff1 || o.ShiftType != model.ShiftEvening || !sameDate(o.OverrideDate, tomorrow) {
		t.Errorf("覆盖内容不正确: %+v", o)
	}

	// 员工视角也应看到换班结果
	my, err := scheduleSvc.MySchedule(context.Background(), uuidStaff1, model.GroupField, &dto.MyScheduleRequest{
		WeekStart: startOfWeek(tomorrow).Format("2006-01-02"),
	})
	if err != nil {
		t.Fatalf("MySchedule 应成功: %v", err)
	}
	found := false
	for _, day := range my.Days {
		if day.Date == tomorrow.Format("2006-01-02") {
			found = day.Source == "override" && day.ShiftType == model.ShiftEvening
		}
	}
	if !found {
		t.Error("员工视角应看到覆盖后的晚班")
	}
}

func TestChangeRequestService_Approve_OffRemovesOverride(t *testing.T) {
	svc, scheduleSvc, repos := setupTestChangeRequestService()
	seedStaff(repos)

	// 预置排班表并给明天落一条覆盖
	tomorrow := startOfDay(time.Now()).AddDate(0, 0, 1)
	if err := scheduleSvc.ApplyDayShift(context.Background(), uuidStaff1, model.GroupField, tomorrow, model.ShiftEvening, uuidAdmin); err != nil {
		t.Fatalf("预置覆盖失败: %v", err)
	}

	req := createReq(tomorrowStr())
	req.CurrentShift = model.ShiftEvening
	req.RequestedShift = model.ShiftOff
	created, err := svc.Create(context.Background(), req, uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if _, err := svc.Approve(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{}, uuidAdmin); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}

	schedule, err := repos.schedule.GetByWeek(context.Background(), startOfWeek(tomorrow), model.GroupField)
	if err != nil {
		t.Fatalf("查询排班表失败: %v", err)
	}
	if len(schedule.Overrides) != 0 {
		t.Errorf("休班审批通过后覆盖应被移除，实际=%d", len(schedule.Overrides))
	}
}

func TestChangeRequestService_Reject_RequiresResponse(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if _, err := svc.Reject(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{}, uuidAdmin); !errors.Is(err, ErrResponseRequired) {
		t.Errorf("期望 ErrResponseRequired，实际: %v", err)
	}

	resp, err := svc.Reject(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{Response: "当日人手不足"}, uuidAdmin)
	if err != nil {
		t.Fatalf("Reject 应成功: %v", err)
	}
	if resp.Status != model.ChangeRequestRejected {
		t.Errorf("期望 status=rejected，实际=%s", resp.Status)
	}
	if resp.ManagerResponse != "当日人手不足" {
		t.Errorf("处理意见应保存，实际=%s", resp.ManagerResponse)
	}
}

func TestChangeRequestService_TerminalStatusImmutable(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Approve(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{}, uuidAdmin); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}

	// 终态后审批、驳回、修改、撤回全部拒绝
	if _, err := svc.Approve(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{}, uuidAdmin); !errors.Is(err, ErrChangeRequestNotPending) {
		t.Errorf("重复审批期望 ErrChangeRequestNotPending，实际: %v", err)
	}
	if _, err := svc.Reject(context.Background(), created.ID, &dto.ReviewChangeRequestRequest{Response: "x"}, uuidAdmin); !errors.Is(err, ErrChangeRequestNotPending) {
		t.Errorf("终态驳回期望 ErrChangeRequestNotPending，实际: %v", err)
	}
	reason := "改理由"
	if _, err := svc.Update(context.Background(), created.ID, &dto.UpdateChangeRequestRequest{Reason: &reason}, uuidStaff1); !errors.Is(err, ErrChangeRequestNotPending) {
		t.Errorf("终态修改期望 ErrChangeRequestNotPending，实际: %v", err)
	}
	if err := svc.Cancel(context.Background(), created.ID, uuidStaff1); !errors.Is(err, ErrChangeRequestNotPending) {
		t.Errorf("终态撤回期望 ErrChangeRequestNotPending，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// 查询测试
// ════════════════════════════════════════════════════════════

func TestChangeRequestService_GetByID_Permission(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	created, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 本人可见
	if _, err := svc.GetByID(context.Background(), created.ID, uuidStaff1, model.RoleFieldStaff); err != nil {
		t.Errorf("本人应可见: %v", err)
	}
	// 其他员工不可见
	if _, err := svc.GetByID(context.Background(), created.ID, uuidStaff2, model.RoleFieldStaff); !errors.Is(err, pkgerrors.ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
	}
	// 经理可见
	if _, err := svc.GetByID(context.Background(), created.ID, "mgr-1", model.RoleManager); err != nil {
		t.Errorf("经理应可见: %v", err)
	}
}

func TestChangeRequestService_ListPendingAndByStaff(t *testing.T) {
	svc, _, repos := setupTestChangeRequestService()
	seedStaff(repos)

	r1, err := svc.Create(context.Background(), createReq(tomorrowStr()), uuidStaff1)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	otherDate := startOfDay(time.Now()).AddDate(0, 0, 3).Format("2006-01-02")
	if _, err := svc.Create(context.Background(), createReq(otherDate), uuidStaff2); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Approve(context.Background(), r1.ID, &dto.ReviewChangeRequestRequest{}, uuidAdmin); err != nil {
		t.Fatalf("Approve 应成功: %v", err)
	}

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending 应成功: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("期望1条待审批，实际=%d", len(pending))
	}

	mine, err := svc.ListByStaff(context.Background(), uuidStaff1)
	if err != nil {
		t.Fatalf("ListByStaff 应成功: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != model.ChangeRequestApproved {
		t.Errorf("员工历史应含已审批的申请，实际: %+v", mine)
	}

	approved, err := svc.List(context.Background(), &dto.ChangeRequestListRequest{Status: model.ChangeRequestApproved})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("期望1条已审批，实际=%d", len(approved))
	}
}

// [自证通过] internal/service/change_request_service_test.go
