package review

import (
	"context"
)

// Repository 书评仓储接口
type Repository interface {
	// Create 创建书评
	Create(ctx context.Context, r *Review) error

	// ListByBook 图书的全部书评(含会员姓名)，按创建时间倒序
	ListByBook(ctx context.Context, bookID uint) ([]*ReviewDetail, error)

	// Summary 图书评分汇总
	Summary(ctx context.Context, bookID uint) (*RatingSummary, error)

	// Delete 删除书评，不存在返回ErrReviewNotFound
	Delete(ctx context.Context, id uint) error
}
