package review

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/review"
)

// ReviewUseCase 书评用例
// 发表前校验图书与会员存在，避免悬空外键
type ReviewUseCase struct {
	reviewService review.Service
	bookRepo      book.Repository
	memberRepo    member.Repository
}

// NewReviewUseCase 创建书评用例
func NewReviewUseCase(reviewService review.Service, bookRepo book.Repository, memberRepo member.Repository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewService: reviewService,
		bookRepo:      bookRepo,
		memberRepo:    memberRepo,
	}
}

// AddReviewRequest 发表书评请求DTO
type AddReviewRequest struct {
	BookID   uint
	MemberID uint
	Rating   int
	Comment  string
}

// Add 发表书评
func (uc *ReviewUseCase) Add(ctx context.Context, req AddReviewRequest) (*review.Review, error) {
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if _, err := uc.memberRepo.FindByID(ctx, req.MemberID); err != nil {
		return nil, err
	}
	return uc.reviewService.AddReview(ctx, req.BookID, req.MemberID, req.Rating, req.Comment)
}

// ListByBook 图书的全部书评
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint) ([]*review.ReviewDetail, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return uc.reviewService.ListByBook(ctx, bookID)
}

// Summary 图书评分汇总
func (uc *ReviewUseCase) Summary(ctx context.Context, bookID uint) (*review.RatingSummary, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return uc.reviewService.Summary(ctx, bookID)
}

// Delete 删除书评
func (uc *ReviewUseCase) Delete(ctx context.Context, id uint) error {
	return uc.reviewService.DeleteReview(ctx, id)
}
