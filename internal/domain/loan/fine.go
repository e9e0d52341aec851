package loan

import (
	"fmt"
	"time"
)

// FineRateCentsPerDay 逾期罚金费率: 每逾期一天100分(1元)
const FineRateCentsPerDay int64 = 100

// CalculateFine 计算逾期罚金(分)
// 罚金 = max(0, 逾期天数) × 日费率，按自然日计算:
// 到期当天归还不罚，次日归还罚一天
func CalculateFine(dueAt, returnedAt time.Time) int64 {
	days := DaysOverdue(dueAt, returnedAt)
	if days <= 0 {
		return 0
	}
	return days * FineRateCentsPerDay
}

// DaysOverdue 逾期天数(可为负，表示提前归还)
func DaysOverdue(dueAt, returnedAt time.Time) int64 {
	due := Midnight(dueAt)
	returned := Midnight(returnedAt)
	return int64(returned.Sub(due).Hours() / 24)
}

// FormatYuan 分转元的展示串("500" → "5.00")
func FormatYuan(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
