package review

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 书评领域错误定义
var (
	// ErrInvalidRating 评分必须在1-5星之间
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidRating, "评分必须在1到5星之间")

	// ErrReviewNotFound 书评不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeNotFound, "书评不存在")
)
