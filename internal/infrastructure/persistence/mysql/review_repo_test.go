package mysql

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/xiebiao/library/internal/domain/review"
)

func TestReviewRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "被评论的书", "9787111558422", 1)
	m := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")

	r1, err := review.NewReview(b.ID, m.ID, 5, "非常好")
	if err != nil {
		t.Fatalf("NewReview失败: %v", err)
	}
	if err := reviewRepo.Create(ctx, r1); err != nil {
		t.Fatalf("创建书评失败: %v", err)
	}

	r2, _ := review.NewReview(b.ID, m.ID, 3, "")
	if err := reviewRepo.Create(ctx, r2); err != nil {
		t.Fatalf("创建书评失败: %v", err)
	}

	list, err := reviewRepo.ListByBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListByBook失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("应有2条书评, got %d", len(list))
	}
	if list[0].MemberName != "张三" {
		t.Errorf("书评应带会员姓名: %+v", list[0])
	}
}

func TestReviewRepository_Summary(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "被评分的书", "", 1)
	m := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")

	// 无书评时汇总为0
	empty, err := reviewRepo.Summary(ctx, b.ID)
	if err != nil {
		t.Fatalf("Summary失败: %v", err)
	}
	if empty.Average != 0 || empty.Count != 0 {
		t.Errorf("无书评应为0, got %+v", empty)
	}

	for _, rating := range []int{5, 4, 3} {
		r, _ := review.NewReview(b.ID, m.ID, rating, "")
		if err := reviewRepo.Create(ctx, r); err != nil {
			t.Fatalf("创建书评失败: %v", err)
		}
	}

	summary, err := reviewRepo.Summary(ctx, b.ID)
	if err != nil {
		t.Fatalf("Summary失败: %v", err)
	}
	if summary.Count != 3 || math.Abs(summary.Average-4.0) > 1e-9 {
		t.Errorf("汇总应为3条平均4.0, got %+v", summary)
	}
}

func TestReviewRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	memberRepo := NewMemberRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	b := mustCreateBook(t, bookRepo, "测试书", "", 1)
	m := mustCreateMember(t, memberRepo, "张三", "zhangsan@example.com")

	r, _ := review.NewReview(b.ID, m.ID, 2, "一般")
	if err := reviewRepo.Create(ctx, r); err != nil {
		t.Fatalf("创建书评失败: %v", err)
	}

	if err := reviewRepo.Delete(ctx, r.ID); err != nil {
		t.Fatalf("删除书评失败: %v", err)
	}
	if err := reviewRepo.Delete(ctx, r.ID); !errors.Is(err, review.ErrReviewNotFound) {
		t.Errorf("重复删除应返回ErrReviewNotFound, got %v", err)
	}
}
