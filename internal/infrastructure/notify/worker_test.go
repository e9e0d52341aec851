package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
)

// fakeLoanRepo 按固定数据应答的借阅仓储
type fakeLoanRepo struct {
	dueTomorrow []*loan.LoanDetail
	overdue     []*loan.LoanDetail
}

func (f *fakeLoanRepo) Create(ctx context.Context, l *loan.Loan) error  { return nil }
func (f *fakeLoanRepo) Update(ctx context.Context, l *loan.Loan) error  { return nil }
func (f *fakeLoanRepo) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	return nil, loan.ErrLoanNotFound
}
func (f *fakeLoanRepo) List(ctx context.Context, filter loan.ListFilter) ([]*loan.LoanDetail, error) {
	if filter.OverdueOnly {
		return f.overdue, nil
	}
	return nil, nil
}
func (f *fakeLoanRepo) CountIssuedByBook(ctx context.Context, bookID uint) (int64, error) {
	return 0, nil
}
func (f *fakeLoanRepo) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	return int64(len(f.overdue)), nil
}
func (f *fakeLoanRepo) DueBetween(ctx context.Context, from, to time.Time) ([]*loan.LoanDetail, error) {
	return f.dueTomorrow, nil
}

func detail(memberEmail, memberName, bookTitle string, dueAt time.Time) *loan.LoanDetail {
	return &loan.LoanDetail{
		Loan: loan.Loan{
			ID:       1,
			BookID:   1,
			MemberID: 1,
			IssuedAt: dueAt.AddDate(0, 0, -14),
			DueAt:    dueAt,
			Status:   loan.StatusIssued,
		},
		BookTitle:   bookTitle,
		MemberName:  memberName,
		MemberEmail: memberEmail,
	}
}

func TestReminderWorker_Scan(t *testing.T) {
	now := time.Now()
	repo := &fakeLoanRepo{
		dueTomorrow: []*loan.LoanDetail{
			detail("due@example.com", "张三", "明天到期的书", loan.Midnight(now).AddDate(0, 0, 1)),
		},
		overdue: []*loan.LoanDetail{
			detail("late@example.com", "李四", "已逾期的书", loan.Midnight(now).AddDate(0, 0, -3)),
		},
	}

	mailer := NewMailer(config.NotifyConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		From:     "library@example.com",
	})

	type sent struct {
		to  string
		msg string
	}
	var mails []sent
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		mails = append(mails, sent{to: to[0], msg: string(msg)})
		return nil
	}

	w := NewReminderWorker(repo, mailer, nil, time.Hour)
	w.Scan(context.Background())

	if len(mails) != 2 {
		t.Fatalf("应发出2封邮件, got %d", len(mails))
	}

	if mails[0].to != "due@example.com" || !strings.Contains(mails[0].msg, "图书到期提醒") {
		t.Errorf("到期提醒不符: to=%s", mails[0].to)
	}
	if !strings.Contains(mails[0].msg, "明天到期的书") {
		t.Errorf("到期提醒内容缺少书名: %s", mails[0].msg)
	}

	if mails[1].to != "late@example.com" || !strings.Contains(mails[1].msg, "图书逾期通知") {
		t.Errorf("逾期通知不符: to=%s", mails[1].to)
	}
	// 逾期3天，罚金3元
	if !strings.Contains(mails[1].msg, "逾期天数：3") || !strings.Contains(mails[1].msg, "3.00元") {
		t.Errorf("逾期通知罚金计算不符: %s", mails[1].msg)
	}
}

func TestReminderWorker_StopsOnContextCancel(t *testing.T) {
	repo := &fakeLoanRepo{}
	mailer := NewMailer(config.NotifyConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	w := NewReminderWorker(repo, mailer, nil, 10*time.Millisecond)
	w.Start(ctx)

	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond) // 等待goroutine退出(不panic即可)
}
