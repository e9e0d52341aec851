package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidCopies 副本数量非法(total<1 或 available超出[0,total])
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidCopies, "副本数量非法")

	// ErrInvalidSearchField 检索字段非法
	ErrInvalidSearchField = apperrors.New(apperrors.ErrCodeInvalidParams, "检索字段非法")

	// ErrTitleAuthorRequired 书名与作者必填
	ErrTitleAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "书名与作者不能为空")

	// ErrBookReferenced 图书存在借阅或书评记录，禁止删除
	ErrBookReferenced = apperrors.New(apperrors.ErrCodeBookReferenced, "图书存在借阅或书评记录，禁止删除")

	// ErrNoAvailableCopies 无可借副本(借出时库存扣减失败)
	ErrNoAvailableCopies = apperrors.New(apperrors.ErrCodeBookUnavailable, "图书无可借副本")
)
