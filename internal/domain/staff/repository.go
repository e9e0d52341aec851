package staff

import (
	"context"
)

// Repository 馆员仓储接口
type Repository interface {
	// Create 创建馆员账号(邮箱唯一性由数据库索引保证)
	Create(ctx context.Context, s *Staff) error

	// FindByID 根据ID查询，不存在返回ErrStaffNotFound
	FindByID(ctx context.Context, id uint) (*Staff, error)

	// FindByEmail 根据邮箱查询，不存在返回ErrStaffNotFound
	FindByEmail(ctx context.Context, email string) (*Staff, error)
}
