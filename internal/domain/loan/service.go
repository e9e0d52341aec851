package loan

import (
	"context"
	"time"
)

// Service 借阅领域服务接口
// 借出/归还涉及图书库存的跨聚合事务，由应用层编排；这里只提供查询能力
type Service interface {
	// GetLoan 根据ID获取借阅记录
	GetLoan(ctx context.Context, id uint) (*Loan, error)

	// ListLoans 按条件查询借阅记录
	ListLoans(ctx context.Context, filter ListFilter) ([]*LoanDetail, error)

	// ListOverdue 当前逾期在借记录
	ListOverdue(ctx context.Context) ([]*LoanDetail, error)
}

type service struct {
	repo Repository
}

// NewService 创建借阅领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetLoan 根据ID获取借阅记录
func (s *service) GetLoan(ctx context.Context, id uint) (*Loan, error) {
	return s.repo.FindByID(ctx, id)
}

// ListLoans 按条件查询借阅记录
func (s *service) ListLoans(ctx context.Context, filter ListFilter) ([]*LoanDetail, error) {
	return s.repo.List(ctx, filter)
}

// ListOverdue 当前逾期在借记录
func (s *service) ListOverdue(ctx context.Context) ([]*LoanDetail, error) {
	return s.repo.List(ctx, ListFilter{
		Status:      StatusIssued,
		OverdueOnly: true,
		Now:         time.Now(),
	})
}
