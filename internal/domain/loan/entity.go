package loan

import (
	"time"
)

// DefaultLoanDays 默认借阅期限(天)
const DefaultLoanDays = 14

// Status 借阅状态
type Status string

const (
	StatusIssued   Status = "issued"   // 已借出
	StatusReturned Status = "returned" // 已归还
)

// Loan 借阅记录实体
// 罚金由归还事务写入，写入后不再重算，是历史事实而非派生值
type Loan struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"bookId"`
	MemberID   uint       `json:"memberId"`
	IssuedAt   time.Time  `json:"issuedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	FineCents  int64      `json:"fineCents"` // 罚金(分)，归还时结算
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewLoan 创建借阅记录
// dueAt为零值时取借出日+默认期限，日期统一归一化到当天零点(UTC)
func NewLoan(bookID, memberID uint, issuedAt, dueAt time.Time) *Loan {
	issued := Midnight(issuedAt)
	if dueAt.IsZero() {
		dueAt = issued.AddDate(0, 0, DefaultLoanDays)
	}
	return &Loan{
		BookID:   bookID,
		MemberID: memberID,
		IssuedAt: issued,
		DueAt:    Midnight(dueAt),
		Status:   StatusIssued,
	}
}

// MarkReturned 标记归还并结算罚金
// 已归还的记录不可重复归还，返回ErrAlreadyReturned
func (l *Loan) MarkReturned(returnedAt time.Time) error {
	if l.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	returned := Midnight(returnedAt)
	l.ReturnedAt = &returned
	l.FineCents = CalculateFine(l.DueAt, returned)
	l.Status = StatusReturned
	return nil
}

// IsOverdue 是否已逾期(未归还且应还日早于now所在日期)
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == StatusIssued && l.DueAt.Before(Midnight(now))
}

// Midnight 日期归一化: 取UTC当天零点
// 借期、逾期和罚金都以自然日为单位计算，不看时分秒
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoanDetail 借阅记录展示条目(冗余图书与会员信息)
type LoanDetail struct {
	Loan
	BookTitle   string `json:"bookTitle"`
	BookAuthor  string `json:"bookAuthor"`
	BookISBN    string `json:"bookIsbn"`
	MemberName  string `json:"memberName"`
	MemberEmail string `json:"memberEmail"`
	MemberPhone string `json:"memberPhone"`
}
