package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Stats counts handled requests for the health endpoint.
type Stats struct {
	mu       sync.Mutex
	total    int64
	byStatus map[string]int64
	started  time.Time
}

// NewStats creates an empty request counter.
func NewStats() *Stats {
	return &Stats{byStatus: map[string]int64{}, started: time.Now()}
}

// Middleware records every request after the handler chain runs.
// Request data is captured before c.Next because Fiber reuses context
// objects.
func (s *Stats) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		path := c.Path()

		err := c.Next()

		status := c.Response().StatusCode()
		s.record(status)

		slog.Info("request",
			"method", method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

func (s *Stats) record(status int) {
	class := "5xx"
	switch {
	case status < 300:
		class = "2xx"
	case status < 400:
		class = "3xx"
	case status < 500:
		class = "4xx"
	}
	s.mu.Lock()
	s.total++
	s.byStatus[class]++
	s.mu.Unlock()
}

// Snapshot returns current counters and uptime.
func (s *Stats) Snapshot() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStatus := make(map[string]int64, len(s.byStatus))
	for k, v := range s.byStatus {
		byStatus[k] = v
	}
	return map[string]interface{}{
		"total":          s.total,
		"by_status":      byStatus,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}
}
