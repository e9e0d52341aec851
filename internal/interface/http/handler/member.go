package handler

import (
	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
type MemberHandler struct {
	memberUseCase *appmember.MemberUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(memberUseCase *appmember.MemberUseCase) *MemberHandler {
	return &MemberHandler{memberUseCase: memberUseCase}
}

// Register 会员注册
// @Summary      会员注册
// @Description  注册新会员并签发借书证号
// @Tags         会员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegisterMemberRequest true "会员信息"
// @Success      200 {object} response.Response{data=member.Member}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/members [post]
func (h *MemberHandler) Register(c *gin.Context) {
	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.memberUseCase.Register(c.Request.Context(), appmember.RegisterRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetMember 会员详情
// @Summary      会员详情
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=member.Member}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v1/members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会员ID")
		return
	}

	result, err := h.memberUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListMembers 会员列表/检索
// @Summary      会员列表
// @Description  q非空时按姓名/邮箱/借书证号模糊检索；email非空时按邮箱精确查询
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        q query string false "检索词"
// @Param        email query string false "邮箱精确查询"
// @Success      200 {object} response.Response{data=[]member.Member}
// @Router       /api/v1/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	term := c.Query("q")

	var err error
	var result interface{}
	if email := c.Query("email"); email != "" {
		result, err = h.memberUseCase.GetByEmail(c.Request.Context(), email)
	} else if term != "" {
		result, err = h.memberUseCase.Search(c.Request.Context(), term)
	} else {
		result, err = h.memberUseCase.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateMember 更新会员
// @Summary      更新会员
// @Description  部分更新，请求体中未出现的字段保持原值
// @Tags         会员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Param        request body dto.UpdateMemberRequest true "待更新字段"
// @Success      200 {object} response.Response{data=member.Member}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v1/members/{id} [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会员ID")
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.memberUseCase.Update(c.Request.Context(), id, req.ToUpdateParams()); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.memberUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeactivateMember 停用会员
// @Summary      停用会员
// @Description  软停用，借阅历史与书评全部保留
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v1/members/{id} [delete]
func (h *MemberHandler) DeactivateMember(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会员ID")
		return
	}

	if err := h.memberUseCase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// BorrowHistory 会员借阅历史
// @Summary      会员借阅历史
// @Description  按借出时间倒序，含在借与已还记录
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Success      200 {object} response.Response{data=[]member.BorrowRecord}
// @Failure      404 {object} response.Response "会员不存在"
// @Router       /api/v1/members/{id}/loans [get]
func (h *MemberHandler) BorrowHistory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会员ID")
		return
	}

	result, err := h.memberUseCase.BorrowHistory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
