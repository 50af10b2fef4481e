package errors

import "errors"

// ErrPermissionDenied 操作人无权访问该资源（如员工操作他人的换班申请）
var ErrPermissionDenied = errors.New("无权执行此操作")
