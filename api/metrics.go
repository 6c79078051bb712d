package api

import (
	"regexp"
	"sort"
	"sync"
	"time"
)

// RequestTrace is the timing of a single request
type RequestTrace struct {
	RequestID string        `json:"requestId"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`
}

// RouteMetrics aggregates the traces of one method and route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// Summary is the collector-wide view of traffic since start
type Summary struct {
	TotalRequests int64     `json:"totalRequests"`
	TotalErrors   int64     `json:"totalErrors"`
	ErrorRate     float64   `json:"errorRate"`
	RouteCount    int       `json:"routeCount"`
	Since         time.Time `json:"since"`
}

// MetricsCollector aggregates request traces in the background. Recording never blocks
// a request; traces are dropped when the queue is full.
type MetricsCollector struct {
	mu            sync.RWMutex
	routes        map[string]*RouteMetrics
	totalRequests int64
	totalErrors   int64
	since         time.Time

	traces chan RequestTrace
	stop   chan struct{}
	once   sync.Once
}

// NewMetricsCollector starts a collector with a queue of buffer traces
func NewMetricsCollector(buffer int) *MetricsCollector {
	if buffer <= 0 {
		buffer = 1000
	}
	mc := &MetricsCollector{
		routes: make(map[string]*RouteMetrics),
		since:  time.Now(),
		traces: make(chan RequestTrace, buffer),
		stop:   make(chan struct{}),
	}
	go mc.run()
	return mc
}

// Record queues trace for aggregation
func (mc *MetricsCollector) Record(trace RequestTrace) {
	select {
	case mc.traces <- trace:
	default:
	}
}

// Stop ends the background aggregation
func (mc *MetricsCollector) Stop() {
	mc.once.Do(func() { close(mc.stop) })
}

func (mc *MetricsCollector) run() {
	for {
		select {
		case trace := <-mc.traces:
			mc.add(trace)
		case <-mc.stop:
			return
		}
	}
}

func (mc *MetricsCollector) add(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	path := normalizeRoutePath(trace.Path)
	key := trace.Method + " " + path
	m, ok := mc.routes[key]
	if !ok {
		m = &RouteMetrics{Method: trace.Method, Path: path, MinTime: trace.Duration}
		mc.routes[key] = m
	}

	m.Count++
	m.TotalTime += trace.Duration
	m.AvgTime = m.TotalTime / time.Duration(m.Count)
	m.LastRequest = trace.StartTime
	if trace.Duration < m.MinTime {
		m.MinTime = trace.Duration
	}
	if trace.Duration > m.MaxTime {
		m.MaxTime = trace.Duration
	}

	mc.totalRequests++
	if trace.Status >= 400 {
		m.ErrorCount++
		mc.totalErrors++
	}
}

// Summary returns overall request counts
func (mc *MetricsCollector) Summary() Summary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	s := Summary{
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		RouteCount:    len(mc.routes),
		Since:         mc.since,
	}
	if mc.totalRequests > 0 {
		s.ErrorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}
	return s
}

// SlowestRoutes returns up to limit routes ordered by average time, slowest first
func (mc *MetricsCollector) SlowestRoutes(limit int) []RouteMetrics {
	mc.mu.RLock()
	routes := make([]RouteMetrics, 0, len(mc.routes))
	for _, m := range mc.routes {
		routes = append(routes, *m)
	}
	mc.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].AvgTime > routes[j].AvgTime
	})
	if limit > 0 && limit < len(routes) {
		routes = routes[:limit]
	}
	return routes
}

var (
	roomIDSegment   = regexp.MustCompile(`/chat_[^/]+`)
	objectIDSegment = regexp.MustCompile(`/[0-9a-fA-F]{24}(/|$)`)
)

// normalizeRoutePath folds ids out of a path so one route aggregates under one key
//   - /api/v1/chat/rooms/chat_L1_c1/messages -> /api/v1/chat/rooms/{room_id}/messages
func normalizeRoutePath(path string) string {
	path = roomIDSegment.ReplaceAllString(path, "/{room_id}")
	path = objectIDSegment.ReplaceAllString(path, "/{id}$1")
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
