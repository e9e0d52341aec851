package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 导出供测试环境(SQLite内存库)复用同一套模型定义
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&StaffModel{},
		&BookModel{},
		&MemberModel{},
		&LoanModel{},
		&ReviewModel{},
	)
}

// StaffModel GORM馆员模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain层的实体不依赖GORM，Repository负责两者之间的转换
type StaffModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string    `gorm:"size:50;not null;comment:姓名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (StaffModel) TableName() string {
	return "staff"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN用指针存储，未填写ISBN的图书存NULL(唯一索引允许多个NULL)
// 2. 可借副本数AvailableCopies通过带条件的原子UPDATE维护，
//    保证 0 <= available_copies <= total_copies
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	ISBN            *string   `gorm:"uniqueIndex;size:20;comment:ISBN号"`
	Title           string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author          string    `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Publisher       string    `gorm:"size:100;comment:出版社"`
	PublicationYear *int      `gorm:"comment:出版年份"`
	Category        string    `gorm:"index;size:50;comment:分类"`
	Language        string    `gorm:"size:30;comment:语种"`
	PageCount       int       `gorm:"comment:页数"`
	Description     string    `gorm:"type:text;comment:简介"`
	CoverURL        string    `gorm:"size:500;comment:封面图片URL"`
	ShelfLocation   string    `gorm:"size:50;comment:架位号"`
	TotalCopies     int       `gorm:"not null;default:1;comment:馆藏副本总数"`
	AvailableCopies int       `gorm:"not null;default:1;comment:可借副本数"`
	CreatedAt       time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// MemberModel GORM会员模型
// 设计说明:
// 1. Email与MembershipNumber都有唯一索引
// 2. 会员不做物理删除，停用时Status置为inactive，保留借阅历史
type MemberModel struct {
	ID               uint      `gorm:"primaryKey"`
	Name             string    `gorm:"index;size:50;not null;comment:姓名"`
	Email            string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Phone            string    `gorm:"size:20;comment:电话"`
	Address          string    `gorm:"size:200;comment:地址"`
	MembershipNumber string    `gorm:"uniqueIndex;size:32;not null;comment:借书证号"`
	Status           string    `gorm:"index;size:10;not null;default:active;comment:状态(active/inactive)"`
	JoinedAt         time.Time `gorm:"comment:入会时间"`
	CreatedAt        time.Time `gorm:"comment:创建时间"`
	UpdatedAt        time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// LoanModel GORM借阅模型
// 设计说明:
// 1. FineCents在归还事务中写入，之后不再重算(历史事实)
// 2. (status, due_at)复合索引支撑逾期扫描
type LoanModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"index;not null;comment:图书ID"`
	MemberID   uint       `gorm:"index;not null;comment:会员ID"`
	IssuedAt   time.Time  `gorm:"not null;comment:借出日期"`
	DueAt      time.Time  `gorm:"index:idx_overdue;not null;comment:应还日期"`
	ReturnedAt *time.Time `gorm:"comment:归还日期"`
	FineCents  int64      `gorm:"not null;default:0;comment:罚金(分)"`
	Status     string     `gorm:"index:idx_overdue;size:10;not null;comment:状态(issued/returned)"`
	CreatedAt  time.Time  `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}

// ReviewModel GORM书评模型
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	MemberID  uint      `gorm:"index;not null;comment:会员ID"`
	Rating    int       `gorm:"not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评论内容"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "book_reviews"
}
