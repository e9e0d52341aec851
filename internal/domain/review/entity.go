package review

import (
	"time"
)

// Review 书评实体
// 评分1-5星，评论内容可为空
type Review struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"bookId"`
	MemberID  uint      `json:"memberId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview 创建书评
func NewReview(bookID, memberID uint, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return &Review{
		BookID:   bookID,
		MemberID: memberID,
		Rating:   rating,
		Comment:  comment,
	}, nil
}

// ReviewDetail 书评展示条目(含会员姓名)
type ReviewDetail struct {
	Review
	MemberName string `json:"memberName"`
}

// RatingSummary 图书评分汇总
type RatingSummary struct {
	BookID  uint    `json:"bookId"`
	Average float64 `json:"average"` // 平均分，无书评时为0
	Count   int64   `json:"count"`
}
