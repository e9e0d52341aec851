package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// ListLoansUseCase 借阅记录查询用例
type ListLoansUseCase struct {
	loanService loan.Service
}

// NewListLoansUseCase 创建查询用例
func NewListLoansUseCase(loanService loan.Service) *ListLoansUseCase {
	return &ListLoansUseCase{loanService: loanService}
}

// ListLoansRequest 查询请求DTO
type ListLoansRequest struct {
	MemberID    uint
	BookID      uint
	Status      string // issued | returned | 空=全部
	OverdueOnly bool
	Limit       int // 最近N条，0不限制
}

// LoanItem 借阅记录展示项
type LoanItem struct {
	LoanID      uint   `json:"loan_id"`
	BookID      uint   `json:"book_id"`
	BookTitle   string `json:"book_title"`
	BookAuthor  string `json:"book_author"`
	BookISBN    string `json:"book_isbn"`
	MemberID    uint   `json:"member_id"`
	MemberName  string `json:"member_name"`
	MemberEmail string `json:"member_email"`
	MemberPhone string `json:"member_phone,omitempty"`
	IssuedAt    string `json:"issued_at"`
	DueAt       string `json:"due_at"`
	ReturnedAt  string `json:"returned_at,omitempty"`
	FineCents   int64  `json:"fine_cents"`
	FineYuan    string `json:"fine_yuan"`
	Status      string `json:"status"`
}

// Execute 执行查询
func (uc *ListLoansUseCase) Execute(ctx context.Context, req ListLoansRequest) ([]*LoanItem, error) {
	details, err := uc.loanService.ListLoans(ctx, loan.ListFilter{
		MemberID:    req.MemberID,
		BookID:      req.BookID,
		Status:      loan.Status(req.Status),
		OverdueOnly: req.OverdueOnly,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*LoanItem, len(details))
	for i, d := range details {
		item := &LoanItem{
			LoanID:     d.ID,
			BookID:     d.BookID,
			BookTitle:  d.BookTitle,
			BookAuthor: d.BookAuthor,
			BookISBN:   d.BookISBN,
			MemberID:    d.MemberID,
			MemberName:  d.MemberName,
			MemberEmail: d.MemberEmail,
			MemberPhone: d.MemberPhone,
			IssuedAt:   d.IssuedAt.Format("2006-01-02"),
			DueAt:      d.DueAt.Format("2006-01-02"),
			FineCents:  d.FineCents,
			FineYuan:   loan.FormatYuan(d.FineCents),
			Status:     string(d.Status),
		}
		if d.ReturnedAt != nil {
			item.ReturnedAt = d.ReturnedAt.Format("2006-01-02")
		}
		items[i] = item
	}
	return items, nil
}
