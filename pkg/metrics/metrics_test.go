package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if LoansIssuedTotal == nil {
		t.Error("LoansIssuedTotal未初始化")
	}
	if MetadataLookupsTotal == nil {
		t.Error("MetadataLookupsTotal未初始化")
	}
	if NotificationsSentTotal == nil {
		t.Error("NotificationsSentTotal未初始化")
	}
	if OverdueLoans == nil {
		t.Error("OverdueLoans未初始化")
	}

	// 重复调用不应panic(重复注册会panic)
	InitMetrics()
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, LoansIssuedTotal)

	LoansIssuedTotal.Inc()
	LoansIssuedTotal.Inc()
	LoansIssuedTotal.Inc()

	got := getCounterValue(t, LoansIssuedTotal)
	if got != before+3 {
		t.Errorf("Counter值错误: expected=%f, got=%f", before+3, got)
	}
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	MetadataLookupsTotal.WithLabelValues("google_books", "hit").Inc()
	MetadataLookupsTotal.WithLabelValues("open_library", "miss").Inc()
	MetadataLookupsTotal.WithLabelValues("google_books", "hit").Inc()

	got := getCounterValue(t, MetadataLookupsTotal.WithLabelValues("google_books", "hit"))
	if got != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", got)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	OverdueLoans.Set(7)
	if got := getGaugeValue(t, OverdueLoans); got != 7 {
		t.Errorf("Gauge设置后值错误: expected=7, got=%f", got)
	}

	OverdueLoans.Set(0)
	if got := getGaugeValue(t, OverdueLoans); got != 0 {
		t.Errorf("Gauge清零后值错误: expected=0, got=%f", got)
	}
}

// getCounterValue 读取Counter当前值
func getCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("读取Counter失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

// getGaugeValue 读取Gauge当前值
func getGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("读取Gauge失败: %v", err)
	}
	return m.GetGauge().GetValue()
}
