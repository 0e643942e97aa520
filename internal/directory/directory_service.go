package directory

import (
	"context"
	"errors"

	directoryerrors "go-elra/internal/directory/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory is the read-only organisational lookup the leave workflow depends on.
// The Find* methods return (nil, nil) when nobody holds the position.
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	FindHOD(ctx context.Context, departmentID uuid.UUID) (*User, error)
	FindHRHOD(ctx context.Context) (*User, error)
	FindSuperAdmin(ctx context.Context) (*User, error)
}

//go:generate mockgen -source=directory_service.go -destination=mock/directory_service_mock.go -package=mock
type Service interface {
	Directory
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("directory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, directoryerrors.ErrUserNotFound
		}
		s.logger.Error("get user failed", zap.String("user_id", id.String()), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, directoryerrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) FindHOD(ctx context.Context, departmentID uuid.UUID) (*User, error) {
	u, err := s.repo.FindHODByDepartmentID(ctx, departmentID)
	if err != nil {
		s.logger.Error("find department hod failed", zap.String("department_id", departmentID.String()), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (s *service) FindHRHOD(ctx context.Context) (*User, error) {
	u, err := s.repo.FindHODByDepartmentName(ctx, HRDepartmentName)
	if err != nil {
		s.logger.Error("find hr hod failed", zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.logger.Warn("no active hr hod configured")
	}
	return u, nil
}

func (s *service) FindSuperAdmin(ctx context.Context) (*User, error) {
	u, err := s.repo.FindFirstByRoleLevel(ctx, LevelSuperAdmin)
	if err != nil {
		s.logger.Error("find super admin failed", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (s *service) ListDepartments(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = DepartmentResponse{
			ID:   d.ID.String(),
			Name: d.Name,
			Code: d.Code,
			IsHR: IsHRDepartment(d.Name),
		}
	}
	return resp, nil
}
