package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
)

// main 主程序入口
// 说明: 手动依赖注入，组装链 Repository ← Service ← UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 注册Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库与Redis连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	memberRepo := mysql.NewMemberRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	staffRepo := mysql.NewStaffRepository(db)
	statsRepo := mysql.NewStatsRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 可选: 外部书目数据源(未启用时手工录入仍可用)
	var metadataClient *metadata.Client
	if cfg.Metadata.Enabled {
		metadataClient = metadata.NewClient(cfg)
		fmt.Printf("  - 外部书目数据源: 已启用\n")
	}

	// 可选: 事件发布(MQ未配置时静默跳过)
	var publisher *mq.Publisher
	if cfg.MQ.Enabled() {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		fmt.Printf("  - 事件发布: 已启用 (exchange=%s)\n", cfg.MQ.Exchange)
	}

	// 5. 领域层
	bookService := book.NewService(bookRepo)
	memberService := member.NewService(memberRepo)
	loanService := loan.NewService(loanRepo)
	reviewService := review.NewService(reviewRepo)
	staffService := staff.NewService(staffRepo)

	// 6. 应用层
	addBookUseCase := appbook.NewAddBookUseCase(bookService, metadataClient, publisher)
	manageBooksUseCase := appbook.NewManageBooksUseCase(bookService)
	exportBooksUseCase := appbook.NewExportBooksUseCase(bookService)
	lookupBookUseCase := appbook.NewLookupBookUseCase(metadataClient)
	memberUseCase := appmember.NewMemberUseCase(memberService)
	issueBookUseCase := apploan.NewIssueBookUseCase(loanRepo, bookRepo, memberRepo, txManager)
	returnBookUseCase := apploan.NewReturnBookUseCase(loanRepo, bookRepo, txManager)
	listLoansUseCase := apploan.NewListLoansUseCase(loanService)
	reviewUseCase := appreview.NewReviewUseCase(reviewService, bookRepo, memberRepo)
	dashboardUseCase := appstats.NewDashboardUseCase(statsRepo)
	staffRegisterUseCase := appstaff.NewRegisterUseCase(staffService)
	loginUseCase := appstaff.NewLoginUseCase(staffService, jwtManager, sessionStore)
	logoutUseCase := appstaff.NewLogoutUseCase(sessionStore)

	// 7. 接口层
	bookHandler := handler.NewBookHandler(addBookUseCase, manageBooksUseCase, exportBooksUseCase, lookupBookUseCase)
	memberHandler := handler.NewMemberHandler(memberUseCase)
	loanHandler := handler.NewLoanHandler(issueBookUseCase, returnBookUseCase, listLoansUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase)
	statsHandler := handler.NewStatsHandler(dashboardUseCase)
	staffHandler := handler.NewStaffHandler(staffRegisterUseCase, loginUseCase, logoutUseCase, jwtManager)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 催还后台任务(SMTP未配置时只做逾期指标统计)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mailer := notify.NewMailer(cfg.Notify)
	reminderWorker := notify.NewReminderWorker(loanRepo, mailer, publisher, cfg.Notify.ScanInterval)
	reminderWorker.Start(ctx)

	// 9. 初始化Gin引擎并注册路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(metrics.GinMiddleware())

	registerRoutes(r, bookHandler, memberHandler, loanHandler, reviewHandler, statsHandler, staffHandler, authMiddleware)

	// 10. 启动服务(带优雅停机)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   指标: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("\n正在停止服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("停止服务超时: %v", err)
	}
	fmt.Println("服务已停止")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	memberHandler *handler.MemberHandler,
	loanHandler *handler.LoanHandler,
	reviewHandler *handler.ReviewHandler,
	statsHandler *handler.StatsHandler,
	staffHandler *handler.StaffHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", metrics.Handler())

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 馆员模块(注册/登录/刷新Token为公开接口)
		staffGroup := v1.Group("/staff")
		{
			staffGroup.POST("/register", staffHandler.Register)
			staffGroup.POST("/login", staffHandler.Login)
			staffGroup.POST("/refresh", staffHandler.RefreshToken)
			staffGroup.POST("/logout", authMiddleware.RequireAuth(), staffHandler.Logout)
		}

		// 业务接口全部要求馆员登录
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			books := authorized.Group("/books")
			{
				books.POST("", bookHandler.AddBook)
				books.GET("", bookHandler.ListBooks)
				books.GET("/popular", bookHandler.PopularBooks)
				books.GET("/export", bookHandler.ExportBooks)
				books.GET("/isbn/:isbn", bookHandler.GetBookByISBN)
				books.GET("/lookup", bookHandler.SearchMetadata)
				books.GET("/lookup/:isbn", bookHandler.LookupBook)
				books.GET("/:id", bookHandler.GetBook)
				books.PUT("/:id", bookHandler.UpdateBook)
				books.DELETE("/:id", bookHandler.DeleteBook)

				// 书评挂在图书下
				books.POST("/:id/reviews", reviewHandler.AddReview)
				books.GET("/:id/reviews", reviewHandler.ListReviews)
				books.GET("/:id/reviews/summary", reviewHandler.ReviewSummary)
			}

			authorized.DELETE("/reviews/:id", reviewHandler.DeleteReview)

			members := authorized.Group("/members")
			{
				members.POST("", memberHandler.Register)
				members.GET("", memberHandler.ListMembers)
				members.GET("/:id", memberHandler.GetMember)
				members.PUT("/:id", memberHandler.UpdateMember)
				members.DELETE("/:id", memberHandler.DeactivateMember)
				members.GET("/:id/loans", memberHandler.BorrowHistory)
			}

			loans := authorized.Group("/loans")
			{
				loans.POST("", loanHandler.IssueBook)
				loans.GET("", loanHandler.ListLoans)
				loans.GET("/overdue", loanHandler.OverdueLoans)
				loans.POST("/:id/return", loanHandler.ReturnBook)
			}

			authorized.GET("/stats/dashboard", statsHandler.Dashboard)
		}
	}
}
