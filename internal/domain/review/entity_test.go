package review

import (
	"errors"
	"testing"
)

func TestNewReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{1, 2, 3, 4, 5} {
		if _, err := NewReview(1, 2, rating, ""); err != nil {
			t.Errorf("评分%d应合法: %v", rating, err)
		}
	}

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := NewReview(1, 2, rating, "")
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("评分%d应返回ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestNewReview_EmptyComment(t *testing.T) {
	// 只打分不写评论是允许的
	r, err := NewReview(1, 2, 4, "")
	if err != nil {
		t.Fatalf("空评论应合法: %v", err)
	}
	if r.Rating != 4 || r.Comment != "" {
		t.Errorf("字段赋值错误: %+v", r)
	}
}
