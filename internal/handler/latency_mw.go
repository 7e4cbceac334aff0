package handler

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/gin-gonic/gin"
)

// Latencies are recorded in microseconds, up to one minute.
const (
	minLatencyMicros = 1
	maxLatencyMicros = int64(time.Minute / time.Microsecond)
	latencySigFigs   = 3
)

const unmatchedRoute = "unmatched"

// LatencyRecorder keeps one histogram per route.
type LatencyRecorder struct {
	mu     sync.Mutex
	routes map[string]*hdrhistogram.Histogram
}

func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{routes: make(map[string]*hdrhistogram.Histogram)}
}

func (l *LatencyRecorder) Record(route string, d time.Duration) {
	value := d.Microseconds()
	if value < minLatencyMicros {
		value = minLatencyMicros
	}
	if value > maxLatencyMicros {
		value = maxLatencyMicros
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	hist, ok := l.routes[route]
	if !ok {
		hist = hdrhistogram.New(minLatencyMicros, maxLatencyMicros, latencySigFigs)
		l.routes[route] = hist
	}
	_ = hist.RecordValue(value)
}

func (l *LatencyRecorder) Snapshot() map[string]dto.LatencyStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make(map[string]dto.LatencyStats, len(l.routes))
	for route, hist := range l.routes {
		stats[route] = dto.LatencyStats{
			Count: hist.TotalCount(),
			P50Ms: microsToMillis(hist.ValueAtQuantile(50)),
			P95Ms: microsToMillis(hist.ValueAtQuantile(95)),
			P99Ms: microsToMillis(hist.ValueAtQuantile(99)),
			MaxMs: microsToMillis(hist.Max()),
		}
	}

	return stats
}

func (l *LatencyRecorder) Middleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}
	l.Record(c.Request.Method+" "+route, time.Since(start))
}

func microsToMillis(v int64) float64 {
	return float64(v) / 1000
}
