// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 会員登録結果のラベル値
const (
	JoinResultSuccess   = "success"
	JoinResultDuplicate = "duplicate"
	JoinResultError     = "error"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordJoin(result string)
	RecordJoinLatency(duration time.Duration)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	joinTotal   *prometheus.CounterVec
	joinLatency prometheus.Histogram
	httpStatus  *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		joinTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hellomember_member_join_total",
			Help: "結果別の会員登録の合計数",
		}, []string{"result"}),
		joinLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hellomember_member_join_latency_seconds",
			Help:    "会員登録のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hellomember_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.joinTotal,
		c.joinLatency,
		c.httpStatus,
	)

	return c
}

// RecordJoin は会員登録の結果を記録する。
func (c *Collector) RecordJoin(result string) {
	c.joinTotal.WithLabelValues(result).Inc()
}

// RecordJoinLatency は会員登録のレイテンシを記録する。
func (c *Collector) RecordJoinLatency(duration time.Duration) {
	c.joinLatency.Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
