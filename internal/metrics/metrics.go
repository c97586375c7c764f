package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crafthub_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	DownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crafthub_downloads_total",
		Help: "Content files served through the download endpoint.",
	})

	RatingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crafthub_ratings_total",
		Help: "Star ratings accepted.",
	})

	CommentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crafthub_comments_total",
		Help: "Visitor comments accepted.",
	})
)

// RequestCounter counts every handled request against its matched route.
func RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		RequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
