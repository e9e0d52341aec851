package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
)

// MemberUseCase 会员管理用例
type MemberUseCase struct {
	memberService member.Service
}

// NewMemberUseCase 创建会员用例
func NewMemberUseCase(memberService member.Service) *MemberUseCase {
	return &MemberUseCase{memberService: memberService}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Register 注册会员
func (uc *MemberUseCase) Register(ctx context.Context, req RegisterRequest) (*member.Member, error) {
	m := member.NewMember(req.Name, req.Email, req.Phone, req.Address)
	return uc.memberService.Register(ctx, m)
}

// Get 根据ID获取会员
func (uc *MemberUseCase) Get(ctx context.Context, id uint) (*member.Member, error) {
	return uc.memberService.GetMember(ctx, id)
}

// GetByEmail 根据邮箱获取会员
func (uc *MemberUseCase) GetByEmail(ctx context.Context, email string) (*member.Member, error) {
	return uc.memberService.GetMemberByEmail(ctx, email)
}

// Update 部分更新会员信息
func (uc *MemberUseCase) Update(ctx context.Context, id uint, params member.UpdateParams) error {
	return uc.memberService.UpdateMember(ctx, id, params)
}

// Deactivate 停用会员
func (uc *MemberUseCase) Deactivate(ctx context.Context, id uint) error {
	return uc.memberService.Deactivate(ctx, id)
}

// List 查询全部会员
func (uc *MemberUseCase) List(ctx context.Context) ([]*member.Member, error) {
	return uc.memberService.ListMembers(ctx)
}

// Search 检索会员
func (uc *MemberUseCase) Search(ctx context.Context, term string) ([]*member.Member, error) {
	return uc.memberService.SearchMembers(ctx, term)
}

// BorrowHistory 会员借阅历史
func (uc *MemberUseCase) BorrowHistory(ctx context.Context, memberID uint) ([]*member.BorrowRecord, error) {
	return uc.memberService.BorrowHistory(ctx, memberID)
}
