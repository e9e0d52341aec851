package member

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Service 会员领域服务接口
type Service interface {
	// Register 注册会员
	// 业务规则:
	// - 姓名、邮箱必填，邮箱格式合法且未被注册
	// - 借书证号由系统生成
	Register(ctx context.Context, m *Member) (*Member, error)

	// GetMember 根据ID获取会员
	GetMember(ctx context.Context, id uint) (*Member, error)

	// GetMemberByEmail 根据邮箱获取会员
	GetMemberByEmail(ctx context.Context, email string) (*Member, error)

	// UpdateMember 部分更新会员信息
	UpdateMember(ctx context.Context, id uint, params UpdateParams) error

	// Deactivate 停用会员(替代物理删除)
	Deactivate(ctx context.Context, id uint) error

	// ListMembers 查询全部会员
	ListMembers(ctx context.Context) ([]*Member, error)

	// SearchMembers 按姓名/邮箱/借书证号检索
	SearchMembers(ctx context.Context, term string) ([]*Member, error)

	// BorrowHistory 会员借阅历史
	BorrowHistory(ctx context.Context, memberID uint) ([]*BorrowRecord, error)
}

type service struct {
	repo Repository
}

// NewService 创建会员领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// emailPattern 简化的邮箱格式校验
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Register 注册会员
func (s *service) Register(ctx context.Context, m *Member) (*Member, error) {
	// 1. 必填字段校验
	if strings.TrimSpace(m.Name) == "" {
		return nil, ErrNameRequired
	}

	// 2. 邮箱格式校验
	if !emailPattern.MatchString(m.Email) {
		return nil, ErrInvalidEmail
	}

	// 3. 生成借书证号并持久化
	// 借书证号冲突概率极低，冲突时重新生成再试
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if m.MembershipNumber == "" {
			m.MembershipNumber = GenerateMembershipNumber()
		}
		err = s.repo.Create(ctx, m)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, ErrMembershipNumberDuplicate) {
			return nil, err
		}
		m.MembershipNumber = ""
	}
	return nil, err
}

// GetMember 根据ID获取会员
func (s *service) GetMember(ctx context.Context, id uint) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

// GetMemberByEmail 根据邮箱获取会员
func (s *service) GetMemberByEmail(ctx context.Context, email string) (*Member, error) {
	return s.repo.FindByEmail(ctx, email)
}

// UpdateMember 部分更新会员信息
func (s *service) UpdateMember(ctx context.Context, id uint, params UpdateParams) error {
	if params.Empty() {
		return nil
	}

	if params.Email != nil && !emailPattern.MatchString(*params.Email) {
		return ErrInvalidEmail
	}

	if params.Status != nil && *params.Status != StatusActive && *params.Status != StatusInactive {
		return ErrInvalidStatus
	}

	return s.repo.UpdateFields(ctx, id, params)
}

// Deactivate 停用会员
func (s *service) Deactivate(ctx context.Context, id uint) error {
	status := StatusInactive
	return s.repo.UpdateFields(ctx, id, UpdateParams{Status: &status})
}

// ListMembers 查询全部会员
func (s *service) ListMembers(ctx context.Context) ([]*Member, error) {
	return s.repo.List(ctx)
}

// SearchMembers 检索会员
func (s *service) SearchMembers(ctx context.Context, term string) ([]*Member, error) {
	return s.repo.Search(ctx, term)
}

// BorrowHistory 会员借阅历史
func (s *service) BorrowHistory(ctx context.Context, memberID uint) ([]*BorrowRecord, error) {
	// 先确认会员存在，避免对不存在的会员返回空列表
	if _, err := s.repo.FindByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.BorrowHistory(ctx, memberID)
}
