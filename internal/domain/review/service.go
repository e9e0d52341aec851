package review

import (
	"context"
)

// Service 书评领域服务接口
type Service interface {
	// AddReview 发表书评(图书、会员存在性由应用层校验)
	AddReview(ctx context.Context, bookID, memberID uint, rating int, comment string) (*Review, error)

	// ListByBook 图书的全部书评
	ListByBook(ctx context.Context, bookID uint) ([]*ReviewDetail, error)

	// Summary 图书评分汇总
	Summary(ctx context.Context, bookID uint) (*RatingSummary, error)

	// DeleteReview 删除书评
	DeleteReview(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建书评领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddReview 发表书评
func (s *service) AddReview(ctx context.Context, bookID, memberID uint, rating int, comment string) (*Review, error) {
	r, err := NewReview(bookID, memberID, rating, comment)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListByBook 图书的全部书评
func (s *service) ListByBook(ctx context.Context, bookID uint) ([]*ReviewDetail, error) {
	return s.repo.ListByBook(ctx, bookID)
}

// Summary 图书评分汇总
func (s *service) Summary(ctx context.Context, bookID uint) (*RatingSummary, error) {
	return s.repo.Summary(ctx, bookID)
}

// DeleteReview 删除书评
func (s *service) DeleteReview(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
