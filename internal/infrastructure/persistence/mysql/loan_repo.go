package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// Update 归还结算更新(在事务内调用)
// WHERE status='issued'和实体层的状态检查双保险:
// 并发归还时只有一个事务能把issued改成returned
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	result := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("id = ?", l.ID).
		Where("status = ?", string(loan.StatusIssued)).
		Updates(map[string]interface{}{
			"returned_at": l.ReturnedAt,
			"fine_cents":  l.FineCents,
			"status":      string(l.Status),
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := getDB(ctx, r.db).Model(&LoanModel{}).Where("id = ?", l.ID).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询借阅记录失败")
		}
		if count == 0 {
			return loan.ErrLoanNotFound
		}
		return loan.ErrAlreadyReturned
	}

	return nil
}

// List 按条件查询借阅记录(含图书/会员冗余信息)
func (r *loanRepository) List(ctx context.Context, filter loan.ListFilter) ([]*loan.LoanDetail, error) {
	query := getDB(ctx, r.db).Model(&LoanModel{}).
		Select(`loans.*, books.title AS book_title, books.author AS book_author,
			books.isbn AS book_isbn, members.name AS member_name,
			members.email AS member_email, members.phone AS member_phone`).
		Joins("JOIN books ON books.id = loans.book_id").
		Joins("JOIN members ON members.id = loans.member_id")

	if filter.MemberID != 0 {
		query = query.Where("loans.member_id = ?", filter.MemberID)
	}
	if filter.BookID != 0 {
		query = query.Where("loans.book_id = ?", filter.BookID)
	}
	if filter.Status != "" {
		query = query.Where("loans.status = ?", string(filter.Status))
	}
	if filter.OverdueOnly {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query = query.Where("loans.status = ?", string(loan.StatusIssued)).
			Where("loans.due_at < ?", loan.Midnight(now))
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []loanDetailRow
	if err := query.Order("loans.issued_at DESC, loans.id DESC").Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanDetails(rows), nil
}

// CountIssuedByBook 图书当前在借副本数
func (r *loanRepository) CountIssuedByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("book_id = ? AND status = ?", bookID, string(loan.StatusIssued)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计在借记录失败")
	}
	return count, nil
}

// CountOverdue 当前逾期在借记录总数
func (r *loanRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Where("status = ? AND due_at < ?", string(loan.StatusIssued), loan.Midnight(now)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计逾期记录失败")
	}
	return count, nil
}

// DueBetween 指定应还日区间内未归还的记录(催还提醒用)
// 左闭右开: from <= due_at < to
func (r *loanRepository) DueBetween(ctx context.Context, from, to time.Time) ([]*loan.LoanDetail, error) {
	var rows []loanDetailRow
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Select(`loans.*, books.title AS book_title, books.author AS book_author,
			books.isbn AS book_isbn, members.name AS member_name,
			members.email AS member_email, members.phone AS member_phone`).
		Joins("JOIN books ON books.id = loans.book_id").
		Joins("JOIN members ON members.id = loans.member_id").
		Where("loans.status = ?", string(loan.StatusIssued)).
		Where("loans.due_at >= ? AND loans.due_at < ?", loan.Midnight(from), loan.Midnight(to)).
		Order("loans.due_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询到期记录失败")
	}

	return toLoanDetails(rows), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// loanDetailRow 联表查询结果行
type loanDetailRow struct {
	LoanModel
	BookTitle   string
	BookAuthor  string
	BookISBN    *string
	MemberName  string
	MemberEmail string
	MemberPhone string
}

func toLoanModel(l *loan.Loan) *LoanModel {
	return &LoanModel{
		ID:         l.ID,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		IssuedAt:   l.IssuedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		FineCents:  l.FineCents,
		Status:     string(l.Status),
	}
}

func toLoanEntity(model *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         model.ID,
		BookID:     model.BookID,
		MemberID:   model.MemberID,
		IssuedAt:   model.IssuedAt,
		DueAt:      model.DueAt,
		ReturnedAt: model.ReturnedAt,
		FineCents:  model.FineCents,
		Status:     loan.Status(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toLoanDetails(rows []loanDetailRow) []*loan.LoanDetail {
	details := make([]*loan.LoanDetail, len(rows))
	for i := range rows {
		isbn := ""
		if rows[i].BookISBN != nil {
			isbn = *rows[i].BookISBN
		}
		details[i] = &loan.LoanDetail{
			Loan:        *toLoanEntity(&rows[i].LoanModel),
			BookTitle:   rows[i].BookTitle,
			BookAuthor:  rows[i].BookAuthor,
			BookISBN:    isbn,
			MemberName:  rows[i].MemberName,
			MemberEmail: rows[i].MemberEmail,
			MemberPhone: rows[i].MemberPhone,
		}
	}
	return details
}
