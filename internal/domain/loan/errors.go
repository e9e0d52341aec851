package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrBookUnavailable 无可借副本
	ErrBookUnavailable = apperrors.New(apperrors.ErrCodeBookUnavailable, "图书无可借副本")

	// ErrAlreadyReturned 已归还，不可重复归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该借阅记录已归还")

	// ErrInvalidDueDate 应还日早于借出日
	ErrInvalidDueDate = apperrors.New(apperrors.ErrCodeInvalidParams, "应还日期不能早于借出日期")
)
