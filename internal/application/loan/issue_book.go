package loan

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/metrics"
)

// IssueBookUseCase 借出图书用例
// 扣减可借副本和写入借阅记录在同一事务中完成:
// 并发借最后一本时，只有一个事务的副本扣减能成功
type IssueBookUseCase struct {
	loanRepo   loan.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	txManager  *mysql.TxManager
}

// NewIssueBookUseCase 创建借出用例
func NewIssueBookUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	txManager *mysql.TxManager,
) *IssueBookUseCase {
	return &IssueBookUseCase{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		txManager:  txManager,
	}
}

// IssueBookRequest 借出请求DTO
type IssueBookRequest struct {
	BookID   uint
	MemberID uint
	DueAt    time.Time // 零值取默认借期
}

// IssueBookResponse 借出响应DTO
type IssueBookResponse struct {
	LoanID   uint   `json:"loan_id"`
	BookID   uint   `json:"book_id"`
	MemberID uint   `json:"member_id"`
	IssuedAt string `json:"issued_at"`
	DueAt    string `json:"due_at"`
}

// Execute 执行借出
func (uc *IssueBookUseCase) Execute(ctx context.Context, req IssueBookRequest) (*IssueBookResponse, error) {
	// 1. 会员校验(停用会员不能借书)
	m, err := uc.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive() {
		return nil, member.ErrMemberInactive
	}

	// 2. 图书存在性校验(可借性由事务内的扣减保证)
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// 3. 应还日校验
	now := time.Now()
	if !req.DueAt.IsZero() && loan.Midnight(req.DueAt).Before(loan.Midnight(now)) {
		return nil, loan.ErrInvalidDueDate
	}

	// 4. 事务: 扣减可借副本 + 创建借阅记录
	l := loan.NewLoan(req.BookID, req.MemberID, now, req.DueAt)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.bookRepo.AdjustAvailable(txCtx, req.BookID, -1); err != nil {
			if errors.Is(err, book.ErrNoAvailableCopies) {
				return loan.ErrBookUnavailable
			}
			return err
		}
		return uc.loanRepo.Create(txCtx, l)
	})
	if err != nil {
		if errors.Is(err, loan.ErrBookUnavailable) {
			metrics.LoansRejectedTotal.Inc()
		}
		return nil, err
	}

	metrics.LoansIssuedTotal.Inc()

	return &IssueBookResponse{
		LoanID:   l.ID,
		BookID:   l.BookID,
		MemberID: l.MemberID,
		IssuedAt: l.IssuedAt.Format("2006-01-02"),
		DueAt:    l.DueAt.Format("2006-01-02"),
	}, nil
}
