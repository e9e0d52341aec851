package handler

import (
	"github.com/gin-gonic/gin"

	appstaff "github.com/xiebiao/library/internal/application/staff"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

// StaffHandler 馆员HTTP处理器
type StaffHandler struct {
	registerUseCase *appstaff.RegisterUseCase
	loginUseCase    *appstaff.LoginUseCase
	logoutUseCase   *appstaff.LogoutUseCase
	jwtManager      *jwt.Manager
}

// NewStaffHandler 创建馆员处理器
func NewStaffHandler(
	registerUseCase *appstaff.RegisterUseCase,
	loginUseCase *appstaff.LoginUseCase,
	logoutUseCase *appstaff.LogoutUseCase,
	jwtManager *jwt.Manager,
) *StaffHandler {
	return &StaffHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		jwtManager:      jwtManager,
	}
}

// Register 馆员注册
// @Summary      馆员注册
// @Description  创建馆员账号，密码需8-20位且同时包含字母和数字
// @Tags         馆员
// @Accept       json
// @Produce      json
// @Param        request body dto.StaffRegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=staff.StaffInfo}
// @Failure      400 {object} response.Response "密码强度不足"
// @Failure      409 {object} response.Response "邮箱已被注册"
// @Router       /api/v1/staff/register [post]
func (h *StaffHandler) Register(c *gin.Context) {
	var req dto.StaffRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appstaff.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Login 馆员登录
// @Summary      馆员登录
// @Tags         馆员
// @Accept       json
// @Produce      json
// @Param        request body dto.StaffLoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=staff.LoginResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/staff/login [post]
func (h *StaffHandler) Login(c *gin.Context) {
	var req dto.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appstaff.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 馆员登出
// @Summary      馆员登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         馆员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/staff/logout [post]
func (h *StaffHandler) Logout(c *gin.Context) {
	staffID := middleware.GetStaffID(c)
	accessToken := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), staffID, accessToken); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// RefreshToken 刷新访问Token
// @Summary      刷新访问Token
// @Description  用Refresh Token换取新的Access Token
// @Tags         馆员
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.RefreshTokenResponse}
// @Failure      401 {object} response.Response "Token无效或已过期"
// @Router       /api/v1/staff/refresh [post]
func (h *StaffHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	accessToken, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RefreshTokenResponse{AccessToken: accessToken})
}
