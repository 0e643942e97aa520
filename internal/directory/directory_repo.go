package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindHODByDepartmentID(ctx context.Context, departmentID uuid.UUID) (*User, error)
	FindHODByDepartmentName(ctx context.Context, name string) (*User, error)
	FindFirstByRoleLevel(ctx context.Context, level int) (*User, error)
	ListDepartments(ctx context.Context) ([]Department, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) users(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Preload("Role").
		Preload("Department")
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.users(ctx).First(&u, "users.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.users(ctx).Where("LOWER(users.email) = LOWER(?)", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Approver lookups pick the earliest-created active user so that a department
// with several HODs always resolves to the same person.
func (r *repository) approvers(ctx context.Context, level int) *gorm.DB {
	return r.users(ctx).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.level = ?", level).
		Where("users.is_active = ?", true).
		Order("users.created_at ASC").
		Order("users.id ASC")
}

func (r *repository) FindHODByDepartmentID(ctx context.Context, departmentID uuid.UUID) (*User, error) {
	var u User
	err := r.approvers(ctx, LevelHOD).
		Where("users.department_id = ?", departmentID).
		First(&u).Error
	return firstOrNil(&u, err)
}

func (r *repository) FindHODByDepartmentName(ctx context.Context, name string) (*User, error) {
	var u User
	err := r.approvers(ctx, LevelHOD).
		Joins("JOIN departments ON departments.id = users.department_id").
		Where("LOWER(departments.name) = LOWER(?)", name).
		First(&u).Error
	return firstOrNil(&u, err)
}

func (r *repository) FindFirstByRoleLevel(ctx context.Context, level int) (*User, error) {
	var u User
	err := r.approvers(ctx, level).First(&u).Error
	return firstOrNil(&u, err)
}

func (r *repository) ListDepartments(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error
	return depts, err
}

// firstOrNil treats "no row" as an absent approver rather than a failure.
func firstOrNil(u *User, err error) (*User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
