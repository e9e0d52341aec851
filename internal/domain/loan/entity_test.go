package loan

import (
	"errors"
	"testing"
	"time"
)

func TestNewLoan_DefaultDue(t *testing.T) {
	issued := time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)
	l := NewLoan(1, 2, issued, time.Time{})

	if l.Status != StatusIssued {
		t.Errorf("新借阅状态应为issued, got %s", l.Status)
	}
	if !l.IssuedAt.Equal(date(2025, 6, 1)) {
		t.Errorf("借出日应归一化到零点, got %v", l.IssuedAt)
	}
	if !l.DueAt.Equal(date(2025, 6, 15)) {
		t.Errorf("默认应还日应为借出日+14天, got %v", l.DueAt)
	}
}

func TestNewLoan_ExplicitDue(t *testing.T) {
	l := NewLoan(1, 2, date(2025, 6, 1), date(2025, 6, 8))
	if !l.DueAt.Equal(date(2025, 6, 8)) {
		t.Errorf("指定应还日应保留, got %v", l.DueAt)
	}
}

func TestMarkReturned(t *testing.T) {
	l := NewLoan(1, 2, date(2025, 6, 1), time.Time{})

	if err := l.MarkReturned(date(2025, 6, 18)); err != nil {
		t.Fatalf("归还失败: %v", err)
	}
	if l.Status != StatusReturned {
		t.Errorf("归还后状态应为returned, got %s", l.Status)
	}
	if l.ReturnedAt == nil || !l.ReturnedAt.Equal(date(2025, 6, 18)) {
		t.Errorf("归还日期记录错误: %v", l.ReturnedAt)
	}
	// 应还日6-15, 18日归还逾期3天
	if l.FineCents != 300 {
		t.Errorf("罚金应为300分, got %d", l.FineCents)
	}
}

func TestMarkReturned_Twice(t *testing.T) {
	l := NewLoan(1, 2, date(2025, 6, 1), time.Time{})
	if err := l.MarkReturned(date(2025, 6, 10)); err != nil {
		t.Fatalf("首次归还失败: %v", err)
	}
	firstFine := l.FineCents

	err := l.MarkReturned(date(2025, 7, 10))
	if !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("重复归还应返回ErrAlreadyReturned, got %v", err)
	}
	// 重复归还不得改写已结算的罚金
	if l.FineCents != firstFine {
		t.Errorf("罚金被改写: %d -> %d", firstFine, l.FineCents)
	}
}

func TestIsOverdue(t *testing.T) {
	l := NewLoan(1, 2, date(2025, 6, 1), time.Time{}) // 应还6-15

	if l.IsOverdue(date(2025, 6, 15)) {
		t.Error("到期当天不算逾期")
	}
	if !l.IsOverdue(date(2025, 6, 16)) {
		t.Error("次日应算逾期")
	}

	// 已归还的记录不再算逾期
	_ = l.MarkReturned(date(2025, 6, 20))
	if l.IsOverdue(date(2025, 6, 30)) {
		t.Error("已归还不算逾期")
	}
}
