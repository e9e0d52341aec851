package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReturnBookUseCase 归还图书用例
// 归还结算(罚金写入)和可借副本加回在同一事务中完成；
// 重复归还由实体状态检查和数据库条件UPDATE双重拦截
type ReturnBookUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	txManager *mysql.TxManager
}

// NewReturnBookUseCase 创建归还用例
func NewReturnBookUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	txManager *mysql.TxManager,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// ReturnBookRequest 归还请求DTO
type ReturnBookRequest struct {
	LoanID uint
}

// ReturnBookResponse 归还响应DTO
type ReturnBookResponse struct {
	LoanID     uint   `json:"loan_id"`
	BookID     uint   `json:"book_id"`
	ReturnedAt string `json:"returned_at"`
	FineCents  int64  `json:"fine_cents"`
	FineYuan   string `json:"fine_yuan"`
}

// Execute 执行归还
func (uc *ReturnBookUseCase) Execute(ctx context.Context, req ReturnBookRequest) (*ReturnBookResponse, error) {
	var l *loan.Loan

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		l, err = uc.loanRepo.FindByID(txCtx, req.LoanID)
		if err != nil {
			return err
		}

		// 实体层状态检查: 已归还直接拒绝，罚金不会被改写
		if err := l.MarkReturned(time.Now()); err != nil {
			return err
		}

		// 条件UPDATE(WHERE status='issued')兜底并发归还
		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}

		// 可借副本加回
		return uc.bookRepo.AdjustAvailable(txCtx, l.BookID, 1)
	})
	if err != nil {
		return nil, err
	}

	metrics.LoansReturnedTotal.Inc()
	if l.FineCents > 0 {
		metrics.FinesCollectedCentsTotal.Add(float64(l.FineCents))
	}

	return &ReturnBookResponse{
		LoanID:     l.ID,
		BookID:     l.BookID,
		ReturnedAt: l.ReturnedAt.Format("2006-01-02"),
		FineCents:  l.FineCents,
		FineYuan:   loan.FormatYuan(l.FineCents),
	}, nil
}
