package dto

// IssueBookRequest 借出请求
// due_at为空时取默认借期(14天)
type IssueBookRequest struct {
	BookID   uint   `json:"book_id" binding:"required"`
	MemberID uint   `json:"member_id" binding:"required"`
	DueAt    string `json:"due_at" binding:"omitempty,datetime=2006-01-02"`
}

// ListLoansQuery 借阅记录查询参数
type ListLoansQuery struct {
	MemberID    uint   `form:"member_id"`
	BookID      uint   `form:"book_id"`
	Status      string `form:"status" binding:"omitempty,oneof=issued returned"`
	OverdueOnly bool   `form:"overdue_only"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
}
