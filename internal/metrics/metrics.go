package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PageRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "page_renders_total", Help: "Number of rendered pages by page and HTTP status."},
		[]string{"page", "status"},
	)
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Number of requests rejected by the rate limiter."},
	)
	SiteReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "site_reloads_total", Help: "Number of content and layout reloads by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PageRenders)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(SiteReloads)
}
