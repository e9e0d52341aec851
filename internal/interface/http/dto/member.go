package dto

import (
	"github.com/xiebiao/library/internal/domain/member"
)

// RegisterMemberRequest 会员注册请求
type RegisterMemberRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=200"`
}

// UpdateMemberRequest 会员更新请求(字段为nil表示不修改)
type UpdateMemberRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  *string `json:"status"` // active | inactive
}

// ToUpdateParams 转换为领域层更新参数
func (r UpdateMemberRequest) ToUpdateParams() member.UpdateParams {
	params := member.UpdateParams{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
	}
	if r.Status != nil {
		s := member.Status(*r.Status)
		params.Status = &s
	}
	return params
}
