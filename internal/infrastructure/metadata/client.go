package metadata

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
)

// Client 书目数据查询客户端
// 设计说明:
// 1. 按顺序尝试多个数据源，前一个故障或未命中时回退下一个
// 2. 每个数据源独立熔断，故障源在熔断窗口内直接跳过
// 3. 全部失败时返回(nil, nil)——元数据查询失败不阻塞编目流程
type Client struct {
	providers []Provider
	breakers  map[string]*circuitbreaker.CircuitBreaker
}

// NewClient 创建查询客户端
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Metadata.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	providers := []Provider{
		NewGoogleBooksProvider(cfg.Metadata.GoogleBooksURL, timeout),
		NewOpenLibraryProvider(cfg.Metadata.OpenLibraryURL, timeout),
	}

	maxFails := cfg.Metadata.BreakerMaxFails
	if maxFails <= 0 {
		maxFails = 5
	}
	openPeriod := cfg.Metadata.BreakerOpenPeriod
	if openPeriod <= 0 {
		openPeriod = time.Minute
	}

	breakers := make(map[string]*circuitbreaker.CircuitBreaker, len(providers))
	for _, p := range providers {
		breakers[p.Name()] = circuitbreaker.NewCircuitBreaker(p.Name(), circuitbreaker.Config{
			Timeout: openPeriod,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(maxFails)
			},
			OnStateChange: reportBreakerState,
		})
	}

	return &Client{providers: providers, breakers: breakers}
}

// NewClientWithProviders 用指定数据源创建客户端(测试用)
func NewClientWithProviders(providers ...Provider) *Client {
	breakers := make(map[string]*circuitbreaker.CircuitBreaker, len(providers))
	for _, p := range providers {
		breakers[p.Name()] = circuitbreaker.NewCircuitBreaker(p.Name(), circuitbreaker.Config{
			OnStateChange: reportBreakerState,
		})
	}
	return &Client{providers: providers, breakers: breakers}
}

// reportBreakerState 上报熔断器状态指标(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
func reportBreakerState(name string, from, to circuitbreaker.State) {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
	log.Printf("书目数据源熔断器状态切换 provider=%s %s -> %s", name, from, to)
}

// FetchByISBN 按ISBN查询书目数据
// 命中即返回；全部数据源失败或未命中时返回(nil, nil)
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	for _, p := range c.providers {
		breaker := c.breakers[p.Name()]

		var meta *BookMetadata
		err := breaker.Execute(func() error {
			m, err := p.FetchByISBN(ctx, isbn)
			if err != nil {
				return err
			}
			meta = m
			return nil
		})
		if err != nil {
			// 数据源故障(含熔断拒绝)，记录后尝试下一个
			metrics.MetadataLookupsTotal.WithLabelValues(p.Name(), "error").Inc()
			log.Printf("书目查询失败 provider=%s isbn=%s: %v", p.Name(), isbn, err)
			continue
		}

		if meta == nil {
			metrics.MetadataLookupsTotal.WithLabelValues(p.Name(), "miss").Inc()
			continue
		}

		metrics.MetadataLookupsTotal.WithLabelValues(p.Name(), "hit").Inc()
		return meta, nil
	}

	return nil, nil
}

// Search 按关键词检索书目数据
// 依次尝试支持检索的数据源，全部失败或未命中时返回空切片
func (c *Client) Search(ctx context.Context, query string, max int) ([]*BookMetadata, error) {
	for _, p := range c.providers {
		searcher, ok := p.(Searcher)
		if !ok {
			continue
		}
		breaker := c.breakers[p.Name()]

		var results []*BookMetadata
		err := breaker.Execute(func() error {
			r, err := searcher.Search(ctx, query, max)
			if err != nil {
				return err
			}
			results = r
			return nil
		})
		if err != nil {
			metrics.MetadataLookupsTotal.WithLabelValues(p.Name(), "error").Inc()
			log.Printf("书目检索失败 provider=%s query=%q: %v", p.Name(), query, err)
			continue
		}

		if len(results) == 0 {
			metrics.MetadataLookupsTotal.WithLabelValues(p.Name(), "miss").Inc()
			continue
		}

		metrics.MetadataLookupsTotal.WithLabelValues(p.Name(), "hit").Inc()
		return results, nil
	}

	return nil, nil
}
