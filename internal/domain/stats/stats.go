package stats

import (
	"context"
)

// Dashboard 馆藏运营总览
type Dashboard struct {
	TotalBooks     int64 `json:"totalBooks"`     // 图书种数
	TotalCopies    int64 `json:"totalCopies"`    // 馆藏副本总数
	AvailableBooks int64 `json:"availableBooks"` // 可借副本总数
	TotalMembers   int64 `json:"totalMembers"`   // 注册会员总数(含停用)
	ActiveMembers  int64 `json:"activeMembers"`  // 正常状态会员数
	BooksIssued    int64 `json:"booksIssued"`    // 当前在借记录数
	OverdueBooks   int64 `json:"overdueBooks"`   // 当前逾期记录数
	FinesCents     int64 `json:"finesCents"`     // 已结算罚金累计(分)
}

// Repository 统计仓储接口
// 直接走聚合查询，不在内存里累加
type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}
