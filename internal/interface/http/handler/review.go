package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/library/internal/application/review"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	reviewUseCase *appreview.ReviewUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(reviewUseCase *appreview.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

// AddReview 发表书评
// @Summary      发表书评
// @Description  会员为图书打分(1-5星)并可附评论
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.AddReviewRequest true "书评内容"
// @Success      200 {object} response.Response{data=review.Review}
// @Failure      400 {object} response.Response "评分超出范围"
// @Failure      404 {object} response.Response "图书或会员不存在"
// @Router       /api/v1/books/{id}/reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.reviewUseCase.Add(c.Request.Context(), appreview.AddReviewRequest{
		BookID:   bookID,
		MemberID: req.MemberID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListReviews 图书书评列表
// @Summary      图书书评列表
// @Description  按发表时间倒序，含会员姓名
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=[]review.ReviewDetail}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	result, err := h.reviewUseCase.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReviewSummary 图书评分汇总
// @Summary      图书评分汇总
// @Description  平均分与书评数，无书评时平均分为0
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=review.RatingSummary}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews/summary [get]
func (h *ReviewHandler) ReviewSummary(c *gin.Context) {
	bookID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	result, err := h.reviewUseCase.Summary(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteReview 删除书评
// @Summary      删除书评
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "书评不存在"
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的书评ID")
		return
	}

	if err := h.reviewUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
