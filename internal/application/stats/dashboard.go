package stats

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/stats"
)

// DashboardUseCase 运营总览用例
type DashboardUseCase struct {
	statsRepo stats.Repository
}

// NewDashboardUseCase 创建总览用例
func NewDashboardUseCase(statsRepo stats.Repository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo}
}

// DashboardResponse 总览响应DTO
type DashboardResponse struct {
	TotalBooks     int64  `json:"total_books"`
	TotalCopies    int64  `json:"total_copies"`
	AvailableBooks int64  `json:"available_books"`
	TotalMembers   int64  `json:"total_members"`
	ActiveMembers  int64  `json:"active_members"`
	BooksIssued    int64  `json:"books_issued"`
	OverdueBooks   int64  `json:"overdue_books"`
	FinesCents     int64  `json:"fines_cents"`
	FinesYuan      string `json:"fines_yuan"`
}

// Execute 查询运营总览
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardResponse, error) {
	d, err := uc.statsRepo.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalBooks:     d.TotalBooks,
		TotalCopies:    d.TotalCopies,
		AvailableBooks: d.AvailableBooks,
		TotalMembers:   d.TotalMembers,
		ActiveMembers:  d.ActiveMembers,
		BooksIssued:    d.BooksIssued,
		OverdueBooks:   d.OverdueBooks,
		FinesCents:     d.FinesCents,
		FinesYuan:      loan.FormatYuan(d.FinesCents),
	}, nil
}
