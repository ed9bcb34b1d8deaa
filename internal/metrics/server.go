package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer returns an HTTP server exposing /metrics and /health on addr.
func NewServer(addr string) *http.Server {
	RegisterMetrics()
	started := time.Now()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(started).String(),
			"service": "missioncontrol",
		})
	})

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
