package handler

import "latexops/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Schedule      *ScheduleHandler
	ChangeRequest *ChangeRequestHandler
	Shift         *ShiftHandler
	Export        *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		User:          NewUserHandler(svc.User),
		Schedule:      NewScheduleHandler(svc.Schedule),
		ChangeRequest: NewChangeRequestHandler(svc.ChangeRequest),
		Shift:         NewShiftHandler(svc.Shift),
		Export:        NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
