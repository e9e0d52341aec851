// Package metrics 提供基于Prometheus的指标收集
//
// 指标命名规范：
//   - Counter以_total结尾（library_loans_issued_total）
//   - Histogram以单位结尾（http_request_duration_seconds）
//   - Gauge使用现在时态（http_requests_in_progress）
//
// 启动时调用InitMetrics()注册指标，/metrics端点由Handler()暴露。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板）、status（HTTP状态码）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 流通业务指标

	// LoansIssuedTotal 借出总数
	LoansIssuedTotal prometheus.Counter

	// LoansReturnedTotal 归还总数
	LoansReturnedTotal prometheus.Counter

	// LoansRejectedTotal 借出失败总数（无可借副本等业务拒绝）
	LoansRejectedTotal prometheus.Counter

	// FinesCollectedCentsTotal 累计罚金（分）
	FinesCollectedCentsTotal prometheus.Counter

	// OverdueLoans 当前逾期借阅数（提醒Worker每轮扫描后更新）
	OverdueLoans prometheus.Gauge

	// 外部服务指标

	// MetadataLookupsTotal 图书元数据查询总数
	// 标签：provider（google_books/open_library）、result（hit/miss/error）
	MetadataLookupsTotal *prometheus.CounterVec

	// NotificationsSentTotal 通知发送总数
	// 标签：result（sent/skipped/error）
	NotificationsSentTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，注册所有指标到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	LoansIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_loans_issued_total",
			Help: "借出总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_loans_returned_total",
			Help: "归还总数",
		},
	)

	LoansRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_loans_rejected_total",
			Help: "借出被业务规则拒绝的次数",
		},
	)

	FinesCollectedCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_fines_collected_cents_total",
			Help: "累计罚金（分）",
		},
	)

	OverdueLoans = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_overdue_loans",
			Help: "当前逾期借阅数",
		},
	)

	MetadataLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_metadata_lookups_total",
			Help: "图书元数据查询总数",
		},
		[]string{"provider", "result"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_notifications_sent_total",
			Help: "通知发送总数",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)
}

// Handler 返回/metrics端点的HTTP处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// GinMiddleware HTTP指标采集中间件
// 使用c.FullPath()作为path标签（路由模板而非实际URL），避免高基数标签
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPRequestsInProgress.Inc()

		c.Next()

		HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未匹配路由归并为一个标签值
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
