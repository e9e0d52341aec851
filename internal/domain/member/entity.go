package member

import (
	"time"
)

// Status 会员状态
type Status string

const (
	StatusActive   Status = "active"   // 正常
	StatusInactive Status = "inactive" // 已停用(保留历史记录)
)

// Member 读者会员实体
type Member struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	MembershipNumber string    `json:"membershipNumber"` // 借书证号，系统生成，全局唯一
	Status           Status    `json:"status"`
	JoinedAt         time.Time `json:"joinedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewMember 创建会员
// 借书证号由持久层在注册事务内生成，这里不赋值
func NewMember(name, email, phone, address string) *Member {
	return &Member{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Address:  address,
		Status:   StatusActive,
		JoinedAt: time.Now(),
	}
}

// IsActive 是否可借书
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// Deactivate 停用会员
// 保留全部借阅与书评历史，会员不做物理删除
func (m *Member) Deactivate() {
	m.Status = StatusInactive
}

// Activate 恢复会员
func (m *Member) Activate() {
	m.Status = StatusActive
}

// UpdateParams 会员部分更新参数
// nil表示不修改该字段
type UpdateParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Status  *Status
}

// Empty 是否没有任何待更新字段
func (p UpdateParams) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Address == nil && p.Status == nil
}

// BorrowRecord 会员借阅历史条目(含图书冗余信息，供展示)
type BorrowRecord struct {
	LoanID     uint       `json:"loanId"`
	BookID     uint       `json:"bookId"`
	BookTitle  string     `json:"bookTitle"`
	BookAuthor string     `json:"bookAuthor"`
	IssuedAt   time.Time  `json:"issuedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	FineCents  int64      `json:"fineCents"`
	Status     string     `json:"status"`
}
