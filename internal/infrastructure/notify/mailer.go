package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/metrics"
)

// Mailer 邮件通知发送器
// SMTP未配置时降级为仅记录日志并返回false，不影响调用方流程
type Mailer struct {
	cfg config.NotifyConfig
	// send 可替换的发送函数(测试注入)
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer 创建邮件发送器
func NewMailer(cfg config.NotifyConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Send 发送纯文本邮件，返回是否真正发出
func (m *Mailer) Send(recipient, subject, body string) bool {
	if !m.cfg.Enabled() {
		log.Printf("[邮件未发送-SMTP未配置] To: %s, Subject: %s", recipient, subject)
		metrics.NotificationsSentTotal.WithLabelValues("skipped").Inc()
		return false
	}

	msg := buildMessage(m.cfg.From, recipient, subject, body)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	if err := m.send(m.cfg.Addr(), auth, m.cfg.From, []string{recipient}, msg); err != nil {
		log.Printf("发送邮件失败 to=%s: %v", recipient, err)
		metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
		return false
	}

	metrics.NotificationsSentTotal.WithLabelValues("sent").Inc()
	return true
}

// SendDueReminder 发送到期提醒
func (m *Mailer) SendDueReminder(email, memberName, bookTitle, dueDate string) bool {
	subject := "图书到期提醒"
	body := fmt.Sprintf(`%s，您好：

您借阅的《%s》将于%s到期。

请在到期日前归还或续借，逾期将产生罚金。

%s`, memberName, bookTitle, dueDate, m.cfg.LibraryName)
	return m.Send(email, subject, body)
}

// SendOverdueNotice 发送逾期通知
func (m *Mailer) SendOverdueNotice(email, memberName, bookTitle, dueDate string, daysOverdue int64, fineCents int64) bool {
	subject := "图书逾期通知"
	body := fmt.Sprintf(`%s，您好：

您借阅的《%s》已逾期。

应还日期：%s
逾期天数：%d
当前罚金：%.2f元

请尽快归还，罚金将按日累计。

%s`, memberName, bookTitle, dueDate, daysOverdue, float64(fineCents)/100, m.cfg.LibraryName)
	return m.Send(email, subject, body)
}

// SendNewArrival 发送新书上架通知
func (m *Mailer) SendNewArrival(email, memberName, bookTitle, bookAuthor string) bool {
	subject := "新书上架通知"
	body := fmt.Sprintf(`%s，您好：

本馆新到图书《%s》(%s)，现已可借阅。

欢迎到馆借阅。

%s`, memberName, bookTitle, bookAuthor, m.cfg.LibraryName)
	return m.Send(email, subject, body)
}

// buildMessage 构造RFC 5322格式的邮件报文
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
