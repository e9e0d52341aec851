package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// main 新书上架通知消费者
// 订阅library.events的book.added事件，向全部在册会员发送新书通知。
// 与API进程分离部署，邮件群发不占用请求路径。
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if !cfg.MQ.Enabled() {
		log.Fatal("MQ未配置(mq.url为空)，通知消费者无法启动")
	}

	metrics.InitMetrics()

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	memberRepo := mysql.NewMemberRepository(db)
	mailer := notify.NewMailer(cfg.Notify)

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, "topic", "library.notification", []string{"book.added"})
	if err != nil {
		log.Fatalf("创建消息消费者失败: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("✓ 新书通知消费者已启动，按Ctrl+C停止")

	err = consumer.Consume(ctx, func(ctx context.Context, event *mq.Event) error {
		if event.Type != "book.added" {
			return nil
		}

		var payload appbook.BookAddedEvent
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			// 格式错误的事件重新入队也无法处理，记录后丢弃
			log.Printf("事件载荷解析失败: %v", err)
			return nil
		}

		members, err := memberRepo.List(ctx)
		if err != nil {
			return err
		}

		sent := 0
		for _, m := range members {
			if !m.IsActive() {
				continue
			}
			if mailer.SendNewArrival(m.Email, m.Name, payload.Title, payload.Author) {
				sent++
			}
		}
		log.Printf("新书通知: 《%s》已通知%d位会员", payload.Title, sent)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("消费消息失败: %v", err)
	}

	fmt.Println("通知消费者已停止")
}
