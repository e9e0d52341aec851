package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
)

func TestMemberRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := mustCreateMember(t, repo, "张三", "zhangsan@example.com")
	if m.ID == 0 {
		t.Fatal("创建后应回填自增ID")
	}

	found, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("FindByID失败: %v", err)
	}
	if found.Name != "张三" || found.Status != member.StatusActive {
		t.Errorf("查询结果不符: %+v", found)
	}

	byEmail, err := repo.FindByEmail(ctx, "zhangsan@example.com")
	if err != nil {
		t.Fatalf("FindByEmail失败: %v", err)
	}
	if byEmail.ID != m.ID {
		t.Errorf("邮箱查询结果不符")
	}

	byNumber, err := repo.FindByMembershipNumber(ctx, m.MembershipNumber)
	if err != nil {
		t.Fatalf("FindByMembershipNumber失败: %v", err)
	}
	if byNumber.ID != m.ID {
		t.Errorf("借书证号查询结果不符")
	}

	if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, member.ErrMemberNotFound) {
		t.Errorf("不存在的会员应返回ErrMemberNotFound, got %v", err)
	}
}

func TestMemberRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	mustCreateMember(t, repo, "张三", "same@example.com")

	dup := member.NewMember("李四", "same@example.com", "", "")
	dup.MembershipNumber = member.GenerateMembershipNumber()
	if err := repo.Create(ctx, dup); !errors.Is(err, member.ErrEmailDuplicate) {
		t.Fatalf("重复邮箱应返回ErrEmailDuplicate, got %v", err)
	}
}

func TestMemberRepository_DuplicateMembershipNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	first := mustCreateMember(t, repo, "张三", "zhangsan@example.com")

	dup := member.NewMember("李四", "lisi@example.com", "", "")
	dup.MembershipNumber = first.MembershipNumber
	if err := repo.Create(ctx, dup); !errors.Is(err, member.ErrMembershipNumberDuplicate) {
		t.Fatalf("重复借书证号应返回ErrMembershipNumberDuplicate, got %v", err)
	}
}

func TestMemberRepository_UpdateAndDeactivate(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := mustCreateMember(t, repo, "张三", "zhangsan@example.com")

	phone := "13800138000"
	if err := repo.UpdateFields(ctx, m.ID, member.UpdateParams{Phone: &phone}); err != nil {
		t.Fatalf("UpdateFields失败: %v", err)
	}

	inactive := member.StatusInactive
	if err := repo.UpdateFields(ctx, m.ID, member.UpdateParams{Status: &inactive}); err != nil {
		t.Fatalf("停用失败: %v", err)
	}

	found, _ := repo.FindByID(ctx, m.ID)
	if found.Phone != "13800138000" || found.Status != member.StatusInactive {
		t.Errorf("更新未生效: %+v", found)
	}
	// 停用不是删除，记录仍在
	if found.Email != "zhangsan@example.com" {
		t.Errorf("停用后信息应保留: %+v", found)
	}
}

func TestMemberRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	m := mustCreateMember(t, repo, "张三", "zhangsan@example.com")
	mustCreateMember(t, repo, "李四", "lisi@example.com")

	byName, err := repo.Search(ctx, "张")
	if err != nil {
		t.Fatalf("Search失败: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != m.ID {
		t.Errorf("姓名检索结果不符: %+v", byName)
	}

	byNumber, err := repo.Search(ctx, m.MembershipNumber)
	if err != nil {
		t.Fatalf("Search失败: %v", err)
	}
	if len(byNumber) != 1 || byNumber[0].ID != m.ID {
		t.Errorf("借书证号检索结果不符: %+v", byNumber)
	}
}

func TestMemberRepository_BorrowHistory(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	b1 := mustCreateBook(t, bookRepo, "第一本", "9787111558422", 1)
	b2 := mustCreateBook(t, bookRepo, "第二本", "", 1)
	m := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")

	older := loan.NewLoan(b1.ID, m.ID, nowDate().AddDate(0, 0, -20), time.Time{})
	newer := loan.NewLoan(b2.ID, m.ID, nowDate(), time.Time{})
	for _, l := range []*loan.Loan{older, newer} {
		if err := loanRepo.Create(ctx, l); err != nil {
			t.Fatalf("创建借阅记录失败: %v", err)
		}
	}
	if err := older.MarkReturned(nowDate().AddDate(0, 0, -3)); err != nil {
		t.Fatalf("标记归还失败: %v", err)
	}
	if err := loanRepo.Update(ctx, older); err != nil {
		t.Fatalf("归还更新失败: %v", err)
	}

	history, err := memberRepo.BorrowHistory(ctx, m.ID)
	if err != nil {
		t.Fatalf("BorrowHistory失败: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("应有2条历史, got %d", len(history))
	}
	// 借出时间倒序
	if history[0].BookTitle != "第二本" || history[1].BookTitle != "第一本" {
		t.Errorf("历史排序不符: %s, %s", history[0].BookTitle, history[1].BookTitle)
	}
	// 归还的记录带罚金(20天前借，14天期限，3天前还 → 逾期3天)
	if history[1].FineCents != 300 {
		t.Errorf("罚金应为300分, got %d", history[1].FineCents)
	}
}
