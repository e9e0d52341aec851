package member

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 会员领域错误定义
var (
	// ErrMemberNotFound 会员不存在
	ErrMemberNotFound = apperrors.New(apperrors.ErrCodeMemberNotFound, "读者不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrMembershipNumberDuplicate 借书证号冲突(重新生成后重试)
	ErrMembershipNumberDuplicate = apperrors.New(apperrors.ErrCodeMembershipNumberDuplicate, "借书证号已存在")

	// ErrMemberInactive 会员已停用，不能办理借阅
	ErrMemberInactive = apperrors.New(apperrors.ErrCodeBusinessError, "读者账号已停用")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	// ErrNameRequired 姓名必填
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")

	// ErrInvalidStatus 会员状态非法
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "会员状态非法")
)
