package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
)

func TestLoanRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "测试书", "9787111558422", 1)
	m := mustCreateMember(t, memberRepo, "王五", "wangwu@example.com")

	l := loan.NewLoan(b.ID, m.ID, nowDate(), time.Time{})
	if err := loanRepo.Create(ctx, l); err != nil {
		t.Fatalf("创建借阅记录失败: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("创建后应回填自增ID")
	}

	found, err := loanRepo.FindByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("FindByID失败: %v", err)
	}
	if found.Status != loan.StatusIssued || found.BookID != b.ID || found.MemberID != m.ID {
		t.Errorf("查询结果不符: %+v", found)
	}

	if _, err := loanRepo.FindByID(ctx, 9999); !errors.Is(err, loan.ErrLoanNotFound) {
		t.Errorf("不存在的记录应返回ErrLoanNotFound, got %v", err)
	}
}

func TestLoanRepository_ReturnOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "测试书", "", 1)
	m := mustCreateMember(t, memberRepo, "王五", "wangwu@example.com")

	l := loan.NewLoan(b.ID, m.ID, nowDate(), time.Time{})
	if err := loanRepo.Create(ctx, l); err != nil {
		t.Fatalf("创建借阅记录失败: %v", err)
	}

	if err := l.MarkReturned(nowDate()); err != nil {
		t.Fatalf("标记归还失败: %v", err)
	}
	if err := loanRepo.Update(ctx, l); err != nil {
		t.Fatalf("归还更新失败: %v", err)
	}

	// 数据库层面的重复归还防护: 已returned的行不再匹配WHERE status='issued'
	if err := loanRepo.Update(ctx, l); !errors.Is(err, loan.ErrAlreadyReturned) {
		t.Fatalf("重复归还更新应返回ErrAlreadyReturned, got %v", err)
	}

	found, _ := loanRepo.FindByID(ctx, l.ID)
	if found.Status != loan.StatusReturned || found.ReturnedAt == nil {
		t.Errorf("归还状态未落库: %+v", found)
	}
}

func TestLoanRepository_ListAndOverdue(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "测试书", "9787111558422", 3)
	m1 := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")
	m2 := mustCreateMember(t, memberRepo, "李四", "lisi@example.com")

	// 一条逾期在借、一条正常在借、一条已归还
	overdue := loan.NewLoan(b.ID, m1.ID, nowDate().AddDate(0, 0, -30), nowDate().AddDate(0, 0, -16))
	current := loan.NewLoan(b.ID, m2.ID, nowDate(), time.Time{})
	returned := loan.NewLoan(b.ID, m1.ID, nowDate().AddDate(0, 0, -10), time.Time{})

	for _, l := range []*loan.Loan{overdue, current, returned} {
		if err := loanRepo.Create(ctx, l); err != nil {
			t.Fatalf("创建借阅记录失败: %v", err)
		}
	}
	if err := returned.MarkReturned(nowDate()); err != nil {
		t.Fatalf("标记归还失败: %v", err)
	}
	if err := loanRepo.Update(ctx, returned); err != nil {
		t.Fatalf("归还更新失败: %v", err)
	}

	all, err := loanRepo.List(ctx, loan.ListFilter{})
	if err != nil {
		t.Fatalf("List失败: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("应有3条记录, got %d", len(all))
	}
	// 联表冗余信息
	if all[0].BookTitle != "测试书" || all[0].MemberName == "" || all[0].MemberEmail == "" {
		t.Errorf("联表信息缺失: %+v", all[0])
	}

	limited, err := loanRepo.List(ctx, loan.ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("List失败: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Limit=2应返回2条, got %d", len(limited))
	}

	byMember, err := loanRepo.List(ctx, loan.ListFilter{MemberID: m1.ID})
	if err != nil {
		t.Fatalf("List失败: %v", err)
	}
	if len(byMember) != 2 {
		t.Errorf("张三应有2条记录, got %d", len(byMember))
	}

	// 逾期过滤: 只有overdue那条(已归还的不算，未到期的不算)
	overdueList, err := loanRepo.List(ctx, loan.ListFilter{OverdueOnly: true, Now: time.Now()})
	if err != nil {
		t.Fatalf("List失败: %v", err)
	}
	if len(overdueList) != 1 || overdueList[0].ID != overdue.ID {
		t.Errorf("逾期过滤结果不符: %+v", overdueList)
	}

	count, err := loanRepo.CountOverdue(ctx, time.Now())
	if err != nil {
		t.Fatalf("CountOverdue失败: %v", err)
	}
	if count != 1 {
		t.Errorf("逾期数应为1, got %d", count)
	}

	issued, err := loanRepo.CountIssuedByBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("CountIssuedByBook失败: %v", err)
	}
	if issued != 2 {
		t.Errorf("在借数应为2, got %d", issued)
	}
}

func TestLoanRepository_DueBetween(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "测试书", "", 3)
	m := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")

	today := nowDate()
	dueTomorrow := loan.NewLoan(b.ID, m.ID, today.AddDate(0, 0, -13), today.AddDate(0, 0, 1))
	dueNextWeek := loan.NewLoan(b.ID, m.ID, today, today.AddDate(0, 0, 7))

	for _, l := range []*loan.Loan{dueTomorrow, dueNextWeek} {
		if err := loanRepo.Create(ctx, l); err != nil {
			t.Fatalf("创建借阅记录失败: %v", err)
		}
	}

	// [明天, 后天)内到期的记录
	due, err := loanRepo.DueBetween(ctx, today.AddDate(0, 0, 1), today.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("DueBetween失败: %v", err)
	}
	if len(due) != 1 || due[0].ID != dueTomorrow.ID {
		t.Errorf("到期区间查询结果不符: %+v", due)
	}
}
