package mysql

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
)

var testDBSeq int64

// nowDate 今天零点(UTC)
func nowDate() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTestDB 创建SQLite内存库
// 仓储层SQL保持方言无关，测试不依赖MySQL实例；
// cache=shared让连接池里的连接看到同一个内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", seq)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取SQL DB失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// mustCreateBook 插入测试图书
func mustCreateBook(t *testing.T, repo book.Repository, title, isbn string, total int) *book.Book {
	t.Helper()

	b := &book.Book{
		ISBN:            isbn,
		Title:           title,
		Author:          "测试作者",
		TotalCopies:     total,
		AvailableCopies: total,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("创建图书失败: %v", err)
	}
	return b
}

// mustCreateMember 插入测试会员
func mustCreateMember(t *testing.T, repo member.Repository, name, email string) *member.Member {
	t.Helper()

	m := member.NewMember(name, email, "", "")
	m.MembershipNumber = member.GenerateMembershipNumber()
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("创建会员失败: %v", err)
	}
	return m
}
