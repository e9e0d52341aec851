package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

func TestStatsRepository_Dashboard(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	statsRepo := NewStatsRepository(db)
	ctx := context.Background()

	// 馆藏: 2种书共5个副本
	b1 := mustCreateBook(t, bookRepo, "第一本", "9787111558422", 3)
	mustCreateBook(t, bookRepo, "第二本", "", 2)

	// 会员: 2个正常 + 1个停用(总数含停用，活跃数不含)
	m1 := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")
	mustCreateMember(t, memberRepo, "李四", "lisi@example.com")
	inactive := mustCreateMember(t, memberRepo, "王五", "wangwu@example.com")
	st := member.StatusInactive
	if err := memberRepo.UpdateFields(ctx, inactive.ID, member.UpdateParams{Status: &st}); err != nil {
		t.Fatalf("停用失败: %v", err)
	}

	// 借阅: 1条逾期在借 + 1条已归还(带罚金)
	issued := loan.NewLoan(b1.ID, m1.ID, nowDate().AddDate(0, 0, -30), nowDate().AddDate(0, 0, -16))
	if err := loanRepo.Create(ctx, issued); err != nil {
		t.Fatalf("创建借阅记录失败: %v", err)
	}
	if err := bookRepo.AdjustAvailable(ctx, b1.ID, -1); err != nil {
		t.Fatalf("扣减可借副本失败: %v", err)
	}

	returned := loan.NewLoan(b1.ID, m1.ID, nowDate().AddDate(0, 0, -20), time.Time{})
	if err := loanRepo.Create(ctx, returned); err != nil {
		t.Fatalf("创建借阅记录失败: %v", err)
	}
	if err := returned.MarkReturned(nowDate().AddDate(0, 0, -1)); err != nil {
		t.Fatalf("标记归还失败: %v", err)
	}
	if err := loanRepo.Update(ctx, returned); err != nil {
		t.Fatalf("归还更新失败: %v", err)
	}

	d, err := statsRepo.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard失败: %v", err)
	}

	if d.TotalBooks != 2 {
		t.Errorf("图书种数应为2, got %d", d.TotalBooks)
	}
	if d.TotalCopies != 5 {
		t.Errorf("副本总数应为5, got %d", d.TotalCopies)
	}
	if d.AvailableBooks != 4 {
		t.Errorf("可借副本应为4, got %d", d.AvailableBooks)
	}
	if d.TotalMembers != 3 {
		t.Errorf("会员总数应为3(含停用), got %d", d.TotalMembers)
	}
	if d.ActiveMembers != 2 {
		t.Errorf("活跃会员应为2, got %d", d.ActiveMembers)
	}
	if d.BooksIssued != 1 {
		t.Errorf("在借数应为1, got %d", d.BooksIssued)
	}
	if d.OverdueBooks != 1 {
		t.Errorf("逾期数应为1, got %d", d.OverdueBooks)
	}
	// 20天前借(期限14天)，1天前还 → 逾期5天=500分
	if d.FinesCents != 500 {
		t.Errorf("罚金累计应为500分, got %d", d.FinesCents)
	}
}
