package dto

// AddReviewRequest 发表书评请求
type AddReviewRequest struct {
	MemberID uint   `json:"member_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"omitempty,max=2000"`
}
