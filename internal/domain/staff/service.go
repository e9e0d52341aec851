package staff

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bcryptCost 密码哈希成本因子
// 12在安全性和登录耗时(~250ms)之间取平衡
const bcryptCost = 12

// Service 馆员领域服务接口
type Service interface {
	// Register 注册馆员账号
	// 业务规则: 密码8-20位，必须同时包含字母和数字
	Register(ctx context.Context, name, email, password string) (*Staff, error)

	// Authenticate 校验邮箱密码，成功返回馆员信息
	Authenticate(ctx context.Context, email, password string) (*Staff, error)

	// GetStaff 根据ID获取馆员
	GetStaff(ctx context.Context, id uint) (*Staff, error)
}

type service struct {
	repo Repository
}

// NewService 创建馆员领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// Register 注册馆员账号
func (s *service) Register(ctx context.Context, name, email, password string) (*Staff, error) {
	// 1. 密码策略校验
	if !isStrongPassword(password) {
		return nil, apperrors.ErrWeakPassword
	}

	// 2. 生成密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 3. 持久化(邮箱唯一性由数据库索引保证)
	st := &Staff{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

// Authenticate 校验邮箱密码
// 账号不存在与密码错误返回同一个错误，避免账号枚举
func (s *service) Authenticate(ctx context.Context, email, password string) (*Staff, error) {
	st, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidPassword
	}

	return st, nil
}

// GetStaff 根据ID获取馆员
func (s *service) GetStaff(ctx context.Context, id uint) (*Staff, error) {
	return s.repo.FindByID(ctx, id)
}

// isStrongPassword 密码强度: 8-20位且同时包含字母和数字
func isStrongPassword(password string) bool {
	if len(password) < 8 || len(password) > 20 {
		return false
	}
	return hasLetter.MatchString(password) && hasDigit.MatchString(password)
}
