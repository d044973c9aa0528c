package demo

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

const mb = 1024.0 * 1024.0

// handleMetrics reports the same field set as the Java demo services:
// startup time, uptime, memory block, image type and pool labels. Numeric
// fields that the original formatted as strings stay strings so the payload
// shape matches what the fetcher sees in production.
func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"application":        s.cfg.Application,
		"profile":            s.cfg.Profile,
		"imageType":          s.cfg.ImageType,
		"connectionPool":     s.cfg.ConnectionPool,
		"startupTimeMs":      s.startupMs,
		"startupTimeSeconds": fmt.Sprintf("%.3f", float64(s.startupMs)/1000.0),
		"uptimeMs":           time.Since(s.startedAt).Milliseconds(),
		"uptimeSeconds":      fmt.Sprintf("%.3f", time.Since(s.startedAt).Seconds()),
		"memory":             s.memoryBlock(),
		"runtime": gin.H{
			"version":    runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"goroutines": runtime.NumGoroutine(),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStartupMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"imageType":          s.cfg.ImageType,
		"startupTimeMs":      s.startupMs,
		"startupTimeSeconds": fmt.Sprintf("%.3f", float64(s.startupMs)/1000.0),
		"profile":            s.cfg.Profile,
	})
}

func (s *Server) handleMemoryMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.memoryBlock())
}

func (s *Server) memoryBlock() gin.H {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	used := float64(ms.HeapAlloc)
	total := float64(ms.HeapSys)
	free := float64(ms.HeapIdle)
	max := float64(ms.Sys)

	usagePercent := 0.0
	if max > 0 {
		usagePercent = used * 100.0 / max
	}

	return gin.H{
		"usedMB":       fmt.Sprintf("%.2f", used/mb),
		"totalMB":      fmt.Sprintf("%.2f", total/mb),
		"maxMB":        fmt.Sprintf("%.2f", max/mb),
		"freeMB":       fmt.Sprintf("%.2f", free/mb),
		"usagePercent": fmt.Sprintf("%.1f%%", usagePercent),
	}
}
