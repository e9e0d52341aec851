package notify

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// ReminderWorker 催还提醒后台任务
// 周期扫描借阅表，对明天到期的记录发提醒、对逾期记录发催还；
// 配置了MQ时同时发布loan.overdue事件供下游消费
type ReminderWorker struct {
	loans     loan.Repository
	mailer    *Mailer
	publisher *mq.Publisher // 可为nil
	interval  time.Duration
}

// OverdueEvent loan.overdue事件载荷
type OverdueEvent struct {
	LoanID      uint   `json:"loan_id"`
	BookID      uint   `json:"book_id"`
	BookTitle   string `json:"book_title"`
	MemberID    uint   `json:"member_id"`
	MemberEmail string `json:"member_email"`
	DaysOverdue int64  `json:"days_overdue"`
	FineCents   int64  `json:"fine_cents"`
}

// NewReminderWorker 创建催还任务
func NewReminderWorker(loans loan.Repository, mailer *Mailer, publisher *mq.Publisher, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderWorker{
		loans:     loans,
		mailer:    mailer,
		publisher: publisher,
		interval:  interval,
	}
}

// Start 启动后台扫描，ctx取消时退出
func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		w.Scan(ctx) // 启动时先扫一轮

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("催还任务已停止")
				return
			case <-ticker.C:
				w.Scan(ctx)
			}
		}
	}()
}

// Scan 执行一轮扫描
func (w *ReminderWorker) Scan(ctx context.Context) {
	log.Println("催还任务: 扫描到期与逾期借阅...")
	now := time.Now()

	w.remindDueTomorrow(ctx, now)
	w.noticeOverdue(ctx, now)
}

// remindDueTomorrow 对明天到期的借阅发送提醒
func (w *ReminderWorker) remindDueTomorrow(ctx context.Context, now time.Time) {
	tomorrow := loan.Midnight(now).AddDate(0, 0, 1)

	due, err := w.loans.DueBetween(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		log.Printf("催还任务: 查询到期记录失败: %v", err)
		return
	}

	for _, l := range due {
		w.mailer.SendDueReminder(l.MemberEmail, l.MemberName, l.BookTitle, l.DueAt.Format("2006-01-02"))
	}
}

// noticeOverdue 对逾期借阅发送催还通知
func (w *ReminderWorker) noticeOverdue(ctx context.Context, now time.Time) {
	overdue, err := w.loans.List(ctx, loan.ListFilter{OverdueOnly: true, Now: now})
	if err != nil {
		log.Printf("催还任务: 查询逾期记录失败: %v", err)
		return
	}

	metrics.OverdueLoans.Set(float64(len(overdue)))

	for _, l := range overdue {
		days := loan.DaysOverdue(l.DueAt, now)
		fine := loan.CalculateFine(l.DueAt, now)

		w.mailer.SendOverdueNotice(l.MemberEmail, l.MemberName, l.BookTitle, l.DueAt.Format("2006-01-02"), days, fine)
		w.publishOverdue(ctx, l, days, fine)
	}
}

// publishOverdue 发布loan.overdue事件(发布失败只记录，不影响扫描)
func (w *ReminderWorker) publishOverdue(ctx context.Context, l *loan.LoanDetail, days int64, fine int64) {
	if w.publisher == nil {
		return
	}

	event, err := mq.NewEvent("loan.overdue", OverdueEvent{
		LoanID:      l.ID,
		BookID:      l.BookID,
		BookTitle:   l.BookTitle,
		MemberID:    l.MemberID,
		MemberEmail: l.MemberEmail,
		DaysOverdue: days,
		FineCents:   fine,
	})
	if err != nil {
		log.Printf("催还任务: 构建逾期事件失败: %v", err)
		return
	}
	if err := w.publisher.Publish(ctx, "loan.overdue", event); err != nil {
		log.Printf("催还任务: 发布逾期事件失败: %v", err)
	}
}
