package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/staff"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// staffRepository 馆员仓储实现(MySQL)
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建馆员仓储
func NewStaffRepository(db *gorm.DB) staff.Repository {
	return &staffRepository{db: db}
}

// Create 创建馆员账号
func (r *staffRepository) Create(ctx context.Context, s *staff.Staff) error {
	model := &StaffModel{
		Email:    s.Email,
		Password: s.PasswordHash,
		Name:     s.Name,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")
		}
		return apperrors.Wrap(err, "创建馆员账号失败")
	}

	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找馆员
func (r *staffRepository) FindByID(ctx context.Context, id uint) (*staff.Staff, error) {
	var model StaffModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆员失败")
	}

	return toStaffEntity(&model), nil
}

// FindByEmail 根据邮箱查找馆员
func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	var model StaffModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆员失败")
	}

	return toStaffEntity(&model), nil
}

func toStaffEntity(model *StaffModel) *staff.Staff {
	return &staff.Staff{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.Password,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
