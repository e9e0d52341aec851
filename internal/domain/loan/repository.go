package loan

import (
	"context"
	"time"
)

// ListFilter 借阅记录查询条件，零值字段不参与过滤
type ListFilter struct {
	MemberID    uint
	BookID      uint
	Status      Status
	OverdueOnly bool      // 只看逾期中的记录
	Now         time.Time // OverdueOnly时的判定基准，零值取当前时间
	Limit       int       // 最多返回条数，0不限制
}

// Repository 借阅仓储接口
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, l *Loan) error

	// FindByID 根据ID查询，不存在返回ErrLoanNotFound
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// Update 整条更新(归还结算时使用，在事务内调用)
	Update(ctx context.Context, l *Loan) error

	// List 按条件查询借阅记录(含图书/会员冗余信息)，借出时间倒序
	List(ctx context.Context, filter ListFilter) ([]*LoanDetail, error)

	// CountIssuedByBook 图书当前在借副本数
	CountIssuedByBook(ctx context.Context, bookID uint) (int64, error)

	// CountOverdue 当前逾期在借记录总数
	CountOverdue(ctx context.Context, now time.Time) (int64, error)

	// DueBetween 指定应还日区间内未归还的记录(催还提醒用)
	DueBetween(ctx context.Context, from, to time.Time) ([]*LoanDetail, error)
}
