package member

import (
	"context"
)

// Repository 会员仓储接口
type Repository interface {
	// Create 创建会员(邮箱、借书证号唯一性由数据库索引保证)
	Create(ctx context.Context, m *Member) error

	// FindByID 根据ID查询，不存在返回ErrMemberNotFound
	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindByEmail 根据邮箱查询，不存在返回ErrMemberNotFound
	FindByEmail(ctx context.Context, email string) (*Member, error)

	// FindByMembershipNumber 根据借书证号查询
	FindByMembershipNumber(ctx context.Context, number string) (*Member, error)

	// UpdateFields 部分更新，只写入params中非nil的字段
	UpdateFields(ctx context.Context, id uint, params UpdateParams) error

	// List 查询全部会员
	List(ctx context.Context) ([]*Member, error)

	// Search 按姓名/邮箱/借书证号模糊检索
	Search(ctx context.Context, term string) ([]*Member, error)

	// BorrowHistory 会员借阅历史，按借出时间倒序
	BorrowHistory(ctx context.Context, memberID uint) ([]*BorrowRecord, error)
}
