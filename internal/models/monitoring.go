package models

import "time"

// MonitoringResponse respuesta completa del endpoint de monitoring
type MonitoringResponse struct {
	Requests    RequestMetrics     `json:"requests"`
	Performance PerformanceMetrics `json:"performance"`
	Cache       CacheMetrics       `json:"cache"`
	Database    DatabaseMetrics    `json:"database"`
	System      SystemMetrics      `json:"system"`
	Redis       RedisMetrics       `json:"redis"`
	Timestamp   string             `json:"timestamp"`
}

// RequestMetrics métricas de requests acumuladas por endpoint
type RequestMetrics struct {
	TotalRequests     int                        `json:"total_requests"`
	ByEndpoint        map[string]EndpointMetrics `json:"by_endpoint"`
	SlowRequests      []SlowRequest              `json:"slow_requests"`
	SlowRequestsCount int                        `json:"slow_requests_count"`
	Errors            []RequestError             `json:"errors"`
	ErrorsCount       int                        `json:"errors_count"`
	TopEndpoints      []TopEndpoint              `json:"top_endpoints"`
}

// EndpointMetrics métricas por endpoint
type EndpointMetrics struct {
	Count     int     `json:"count"`
	AvgTime   float64 `json:"avg_time"`
	TotalTime int64   `json:"total_time"`
}

// SlowRequest request que superó el umbral de latencia
type SlowRequest struct {
	Endpoint  string    `json:"endpoint"`
	Duration  int64     `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// RequestError request que terminó en error
type RequestError struct {
	Endpoint   string    `json:"endpoint"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// TopEndpoint endpoint más usado
type TopEndpoint struct {
	Endpoint  string `json:"endpoint"`
	Count     int    `json:"count"`
	AvgTimeMs string `json:"avg_time_ms"`
}

// PerformanceMetrics latencias agregadas
type PerformanceMetrics struct {
	AvgResponseTimeMs string `json:"avg_response_time_ms"`
	MaxResponseTimeMs string `json:"max_response_time_ms"`
	MinResponseTimeMs string `json:"min_response_time_ms"`
}

// CacheMetrics métricas del caché de reportes
type CacheMetrics struct {
	TotalKeys         int     `json:"total_keys"`
	HitRate           float64 `json:"hit_rate"`
	HitRatePercentage string  `json:"hit_rate_percentage"`
	TotalHits         int64   `json:"total_hits"`
	TotalMisses       int64   `json:"total_misses"`
	TotalRequests     int64   `json:"total_requests"`
}

// DatabaseMetrics métricas del pool de PostgreSQL
type DatabaseMetrics struct {
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	Status          string `json:"status"`
}

// SystemMetrics métricas del proceso
type SystemMetrics struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	UptimeHours   string  `json:"uptime_hours"`
	HeapUsedMB    string  `json:"heap_used_mb"`
	HeapTotalMB   string  `json:"heap_total_mb"`
	Goroutines    int     `json:"goroutines"`
	GoVersion     string  `json:"go_version"`
	Platform      string  `json:"platform"`
	Environment   string  `json:"environment"`
}

// RedisMetrics métricas de Redis
type RedisMetrics struct {
	Connected bool   `json:"connected"`
	Keys      int    `json:"keys"`
	Status    string `json:"status"`
}

// RequestData datos de un request individual
type RequestData struct {
	Endpoint   string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}
