package staff

import (
	"context"

	"github.com/xiebiao/library/internal/domain/staff"
)

// RegisterUseCase 馆员注册用例
type RegisterUseCase struct {
	staffService staff.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(staffService staff.Service) *RegisterUseCase {
	return &RegisterUseCase{staffService: staffService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*StaffInfo, error) {
	st, err := uc.staffService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &StaffInfo{
		ID:    st.ID,
		Name:  st.Name,
		Email: st.Email,
	}, nil
}
