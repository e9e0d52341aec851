package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	issueBookUseCase  *apploan.IssueBookUseCase
	returnBookUseCase *apploan.ReturnBookUseCase
	listLoansUseCase  *apploan.ListLoansUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	issueBookUseCase *apploan.IssueBookUseCase,
	returnBookUseCase *apploan.ReturnBookUseCase,
	listLoansUseCase *apploan.ListLoansUseCase,
) *LoanHandler {
	return &LoanHandler{
		issueBookUseCase:  issueBookUseCase,
		returnBookUseCase: returnBookUseCase,
		listLoansUseCase:  listLoansUseCase,
	}
}

// IssueBook 借出图书
// @Summary      借出图书
// @Description  扣减可借副本并创建借阅记录，due_at为空时借期14天
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.IssueBookRequest true "借出信息"
// @Success      200 {object} response.Response{data=loan.IssueBookResponse}
// @Failure      400 {object} response.Response "无可借副本/会员已停用"
// @Failure      404 {object} response.Response "图书或会员不存在"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) IssueBook(c *gin.Context) {
	var req dto.IssueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	var dueAt time.Time
	if req.DueAt != "" {
		dueAt, _ = time.Parse("2006-01-02", req.DueAt) // 格式已由binding校验
	}

	result, err := h.issueBookUseCase.Execute(c.Request.Context(), apploan.IssueBookRequest{
		BookID:   req.BookID,
		MemberID: req.MemberID,
		DueAt:    dueAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReturnBook 归还图书
// @Summary      归还图书
// @Description  结算逾期罚金(每天1元)并恢复可借副本，重复归还会被拒绝
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=loan.ReturnBookResponse}
// @Failure      400 {object} response.Response "已归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id}/return [post]
func (h *LoanHandler) ReturnBook(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅记录ID")
		return
	}

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), apploan.ReturnBookRequest{LoanID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListLoans 借阅记录查询
// @Summary      借阅记录查询
// @Description  支持按会员、图书、状态过滤，overdue_only=true仅看逾期在借
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        member_id query int false "会员ID"
// @Param        book_id query int false "图书ID"
// @Param        status query string false "状态" Enums(issued, returned)
// @Param        overdue_only query bool false "仅逾期在借"
// @Param        limit query int false "最近N条"
// @Success      200 {object} response.Response{data=[]loan.LoanItem}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	var query dto.ListLoansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listLoansUseCase.Execute(c.Request.Context(), apploan.ListLoansRequest{
		MemberID:    query.MemberID,
		BookID:      query.BookID,
		Status:      query.Status,
		OverdueOnly: query.OverdueOnly,
		Limit:       query.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// OverdueLoans 逾期清单
// @Summary      逾期清单
// @Description  当前所有已过应还日仍未归还的借阅记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]loan.LoanItem}
// @Router       /api/v1/loans/overdue [get]
func (h *LoanHandler) OverdueLoans(c *gin.Context) {
	result, err := h.listLoansUseCase.Execute(c.Request.Context(), apploan.ListLoansRequest{
		OverdueOnly: true,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
