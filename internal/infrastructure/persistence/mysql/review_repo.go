package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/review"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reviewRepository 书评仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建书评
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:   rv.BookID,
		MemberID: rv.MemberID,
		Rating:   rv.Rating,
		Comment:  rv.Comment,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建书评失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt

	return nil
}

// ListByBook 图书的全部书评(含会员姓名)，按创建时间倒序
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.ReviewDetail, error) {
	type row struct {
		ReviewModel
		MemberName string
	}

	var rows []row
	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("book_reviews.*, members.name AS member_name").
		Joins("JOIN members ON members.id = book_reviews.member_id").
		Where("book_reviews.book_id = ?", bookID).
		Order("book_reviews.created_at DESC, book_reviews.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书评失败")
	}

	details := make([]*review.ReviewDetail, len(rows))
	for i := range rows {
		details[i] = &review.ReviewDetail{
			Review: review.Review{
				ID:        rows[i].ID,
				BookID:    rows[i].BookID,
				MemberID:  rows[i].MemberID,
				Rating:    rows[i].Rating,
				Comment:   rows[i].Comment,
				CreatedAt: rows[i].CreatedAt,
			},
			MemberName: rows[i].MemberName,
		}
	}
	return details, nil
}

// Summary 图书评分汇总
// 无书评时Average为0、Count为0(COALESCE兜底)
func (r *reviewRepository) Summary(ctx context.Context, bookID uint) (*review.RatingSummary, error) {
	var result struct {
		Average float64
		Count   int64
	}

	err := getDB(ctx, r.db).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&result).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评分汇总失败")
	}

	return &review.RatingSummary{
		BookID:  bookID,
		Average: result.Average,
		Count:   result.Count,
	}, nil
}

// Delete 删除书评
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书评失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}
