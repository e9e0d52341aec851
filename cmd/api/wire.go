//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式:
//
//	wire gen ./cmd/api
//
// 生成wire_gen.go后，main.go可改用InitializeApp()完成组装。
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appmember "github.com/xiebiao/library/internal/application/member"
	appreview "github.com/xiebiao/library/internal/application/review"
	appstaff "github.com/xiebiao/library/internal/application/staff"
	appstats "github.com/xiebiao/library/internal/application/stats"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/metadata"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewMemberRepository,
	mysql.NewLoanRepository,
	mysql.NewReviewRepository,
	mysql.NewStaffRepository,
	mysql.NewStatsRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	member.NewService,
	loan.NewService,
	review.NewService,
	staff.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewAddBookUseCase,
	appbook.NewManageBooksUseCase,
	appbook.NewExportBooksUseCase,
	appbook.NewLookupBookUseCase,
	appmember.NewMemberUseCase,
	apploan.NewIssueBookUseCase,
	apploan.NewReturnBookUseCase,
	apploan.NewListLoansUseCase,
	appreview.NewReviewUseCase,
	appstats.NewDashboardUseCase,
	appstaff.NewRegisterUseCase,
	appstaff.NewLoginUseCase,
	appstaff.NewLogoutUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewMemberHandler,
	handler.NewLoanHandler,
	handler.NewReviewHandler,
	handler.NewStatsHandler,
	handler.NewStaffHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideMetadataClient 外部书目数据源(未启用时为nil，编目走纯手工录入)
func provideMetadataClient(cfg *config.Config) *metadata.Client {
	if !cfg.Metadata.Enabled {
		return nil
	}
	return metadata.NewClient(cfg)
}

// providePublisher 事件发布器(MQ未配置时为nil)
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled() {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideMailer 从配置创建邮件发送器
func provideMailer(cfg *config.Config) *notify.Mailer {
	return notify.NewMailer(cfg.Notify)
}

// provideReminderWorker 创建催还扫描任务
func provideReminderWorker(
	cfg *config.Config,
	loanRepo loan.Repository,
	mailer *notify.Mailer,
	publisher *mq.Publisher,
) *notify.ReminderWorker {
	return notify.NewReminderWorker(loanRepo, mailer, publisher, cfg.Notify.ScanInterval)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	memberHandler *handler.MemberHandler,
	loanHandler *handler.LoanHandler,
	reviewHandler *handler.ReviewHandler,
	statsHandler *handler.StatsHandler,
	staffHandler *handler.StaffHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	registerRoutes(r, bookHandler, memberHandler, loanHandler, reviewHandler, statsHandler, staffHandler, authMiddleware)
	return r
}

// InitializeApp Wire注入器: 构造完整的HTTP应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideMetadataClient,
		providePublisher,
		provideGinEngine,
	)
	return nil, nil
}

// InitializeReminderWorker Wire注入器: 构造催还扫描任务
func InitializeReminderWorker() (*notify.ReminderWorker, error) {
	wire.Build(
		config.Load,
		mysql.NewDB,
		mysql.NewLoanRepository,
		provideMailer,
		providePublisher,
		provideReminderWorker,
	)
	return nil, nil
}
