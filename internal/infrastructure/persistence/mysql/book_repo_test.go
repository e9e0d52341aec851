package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
)

func TestBookRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, repo, "Go程序设计语言", "9787111558422", 3)
	if b.ID == 0 {
		t.Fatal("创建后应回填自增ID")
	}

	found, err := repo.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByID失败: %v", err)
	}
	if found.Title != "Go程序设计语言" || found.AvailableCopies != 3 {
		t.Errorf("查询结果不符: %+v", found)
	}

	byISBN, err := repo.FindByISBN(ctx, "9787111558422")
	if err != nil {
		t.Fatalf("FindByISBN失败: %v", err)
	}
	if byISBN.ID != b.ID {
		t.Errorf("ISBN查询结果不符: %d != %d", byISBN.ID, b.ID)
	}

	if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, book.ErrBookNotFound) {
		t.Errorf("不存在的图书应返回ErrBookNotFound, got %v", err)
	}
}

func TestBookRepository_DuplicateISBN(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	mustCreateBook(t, repo, "第一本", "9787111558422", 1)

	dup := &book.Book{ISBN: "9787111558422", Title: "第二本", Author: "某人", TotalCopies: 1, AvailableCopies: 1}
	if err := repo.Create(ctx, dup); !errors.Is(err, book.ErrISBNDuplicate) {
		t.Fatalf("重复ISBN应返回ErrISBNDuplicate, got %v", err)
	}

	// 重复插入失败后不应留下第二条记录
	books, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List失败: %v", err)
	}
	if len(books) != 1 {
		t.Errorf("库里应只有1本书, got %d", len(books))
	}
}

func TestBookRepository_EmptyISBNNotUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	// 无ISBN的旧书可以有多本(存NULL，不触发唯一索引)
	mustCreateBook(t, repo, "地方志(上)", "", 1)
	mustCreateBook(t, repo, "地方志(下)", "", 1)

	books, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List失败: %v", err)
	}
	if len(books) != 2 {
		t.Errorf("应有2本无ISBN图书, got %d", len(books))
	}
}

func TestBookRepository_UpdateFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, repo, "旧书名", "9787111558422", 2)

	newTitle := "新书名"
	shelf := "A-3-2"
	err := repo.UpdateFields(ctx, b.ID, book.UpdateParams{
		Title:         &newTitle,
		ShelfLocation: &shelf,
	})
	if err != nil {
		t.Fatalf("UpdateFields失败: %v", err)
	}

	found, err := repo.FindByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("FindByID失败: %v", err)
	}
	if found.Title != "新书名" || found.ShelfLocation != "A-3-2" {
		t.Errorf("更新字段未生效: %+v", found)
	}
	// 未提供的字段保持原值
	if found.ISBN != "9787111558422" || found.TotalCopies != 2 {
		t.Errorf("未更新字段被改写: %+v", found)
	}

	if err := repo.UpdateFields(ctx, 9999, book.UpdateParams{Title: &newTitle}); !errors.Is(err, book.ErrBookNotFound) {
		t.Errorf("更新不存在的图书应返回ErrBookNotFound, got %v", err)
	}
}

func TestBookRepository_AdjustAvailable(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, repo, "并发测试", "9787111558422", 2)

	// 借出两本
	if err := repo.AdjustAvailable(ctx, b.ID, -1); err != nil {
		t.Fatalf("第一次扣减失败: %v", err)
	}
	if err := repo.AdjustAvailable(ctx, b.ID, -1); err != nil {
		t.Fatalf("第二次扣减失败: %v", err)
	}

	// 无可借副本时扣减失败
	if err := repo.AdjustAvailable(ctx, b.ID, -1); !errors.Is(err, book.ErrNoAvailableCopies) {
		t.Fatalf("库存为0时应返回ErrNoAvailableCopies, got %v", err)
	}

	// 归还两本
	if err := repo.AdjustAvailable(ctx, b.ID, 1); err != nil {
		t.Fatalf("归还加回失败: %v", err)
	}
	if err := repo.AdjustAvailable(ctx, b.ID, 1); err != nil {
		t.Fatalf("归还加回失败: %v", err)
	}

	// 可借数不能超过馆藏总数
	if err := repo.AdjustAvailable(ctx, b.ID, 1); !errors.Is(err, book.ErrInvalidCopies) {
		t.Fatalf("超出总数应返回ErrInvalidCopies, got %v", err)
	}

	found, _ := repo.FindByID(ctx, b.ID)
	if found.AvailableCopies != 2 {
		t.Errorf("最终可借数应为2, got %d", found.AvailableCopies)
	}

	if err := repo.AdjustAvailable(ctx, 9999, -1); !errors.Is(err, book.ErrBookNotFound) {
		t.Errorf("不存在的图书应返回ErrBookNotFound, got %v", err)
	}
}

func TestBookRepository_DeleteReferenced(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "有借阅记录的书", "9787111558422", 1)
	m := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")

	l := loan.NewLoan(b.ID, m.ID, nowDate(), nowDate().AddDate(0, 0, 14))
	if err := loanRepo.Create(ctx, l); err != nil {
		t.Fatalf("创建借阅记录失败: %v", err)
	}

	if err := bookRepo.Delete(ctx, b.ID); !errors.Is(err, book.ErrBookReferenced) {
		t.Fatalf("有借阅记录的图书应拒绝删除, got %v", err)
	}

	// 无关联记录的图书可以删除
	b2 := mustCreateBook(t, bookRepo, "可删除的书", "", 1)
	if err := bookRepo.Delete(ctx, b2.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := bookRepo.FindByID(ctx, b2.ID); !errors.Is(err, book.ErrBookNotFound) {
		t.Errorf("删除后应查不到, got %v", err)
	}
}

func TestBookRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	mustCreateBook(t, repo, "Go程序设计语言", "9787111558422", 1)
	mustCreateBook(t, repo, "Rust权威指南", "9787111657989", 1)

	byTitle, err := repo.Search(ctx, "Go", book.SearchByTitle)
	if err != nil {
		t.Fatalf("Search失败: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Title != "Go程序设计语言" {
		t.Errorf("书名检索结果不符: %+v", byTitle)
	}

	byAny, err := repo.Search(ctx, "9787111", book.SearchByAny)
	if err != nil {
		t.Fatalf("Search失败: %v", err)
	}
	if len(byAny) != 2 {
		t.Errorf("any检索应命中2本, got %d", len(byAny))
	}

	none, err := repo.Search(ctx, "不存在的书", book.SearchByTitle)
	if err != nil {
		t.Fatalf("Search失败: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("无命中应返回空列表, got %d", len(none))
	}
}

func TestBookRepository_MostBorrowed(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	loanRepo := NewLoanRepository(db)
	ctx := context.Background()

	hot := mustCreateBook(t, bookRepo, "热门书", "9787111558422", 5)
	cold := mustCreateBook(t, bookRepo, "冷门书", "9787111657989", 5)
	never := mustCreateBook(t, bookRepo, "没人借的书", "", 1)
	m := mustCreateMember(t, memberRepo, "李四", "lisi@example.com")

	for i := 0; i < 3; i++ {
		l := loan.NewLoan(hot.ID, m.ID, nowDate(), nowDate().AddDate(0, 0, 14))
		if err := loanRepo.Create(ctx, l); err != nil {
			t.Fatalf("创建借阅记录失败: %v", err)
		}
	}
	l := loan.NewLoan(cold.ID, m.ID, nowDate(), nowDate().AddDate(0, 0, 14))
	if err := loanRepo.Create(ctx, l); err != nil {
		t.Fatalf("创建借阅记录失败: %v", err)
	}

	popular, err := bookRepo.MostBorrowed(ctx, 5)
	if err != nil {
		t.Fatalf("MostBorrowed失败: %v", err)
	}
	if len(popular) != 3 {
		t.Fatalf("全部图书应上榜(零借阅计0次), got %d", len(popular))
	}
	if popular[0].Title != "热门书" || popular[0].BorrowCount != 3 {
		t.Errorf("排行第一应为热门书×3, got %s×%d", popular[0].Title, popular[0].BorrowCount)
	}
	if popular[1].Title != "冷门书" || popular[1].BorrowCount != 1 {
		t.Errorf("排行第二应为冷门书×1, got %s×%d", popular[1].Title, popular[1].BorrowCount)
	}
	if popular[2].ID != never.ID || popular[2].BorrowCount != 0 {
		t.Errorf("零借阅图书应垫底且计0次, got %s×%d", popular[2].Title, popular[2].BorrowCount)
	}
}
