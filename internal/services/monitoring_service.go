package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"ventas-service/internal/cache"
	"ventas-service/internal/config"
	"ventas-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// MonitoringService define la interfaz del sistema de monitoring interno
type MonitoringService interface {
	GetMetrics(ctx context.Context) *models.MonitoringResponse
	RecordRequest(data models.RequestData)
}

// monitoringService implementa MonitoringService
type monitoringService struct {
	config      *config.Config
	redisClient *redis.Client
	dbPool      *sql.DB
	reportCache *cache.ReportCache

	requestsMutex sync.RWMutex
	requests      map[string]*models.EndpointMetrics
	slowRequests  []models.SlowRequest
	errors        []models.RequestError
	totalRequests int64

	startTime time.Time
}

// NewMonitoringService crea una nueva instancia del servicio
func NewMonitoringService(
	config *config.Config,
	redisClient *redis.Client,
	dbPool *sql.DB,
	reportCache *cache.ReportCache,
) MonitoringService {
	return &monitoringService{
		config:      config,
		redisClient: redisClient,
		dbPool:      dbPool,
		reportCache: reportCache,
		requests:    make(map[string]*models.EndpointMetrics),
		startTime:   time.Now(),
	}
}

// RecordRequest acumula las métricas de un request terminado
func (s *monitoringService) RecordRequest(data models.RequestData) {
	s.requestsMutex.Lock()
	defer s.requestsMutex.Unlock()

	endpointKey := fmt.Sprintf("%s %s", data.Method, data.Endpoint)

	metrics, exists := s.requests[endpointKey]
	if !exists {
		metrics = &models.EndpointMetrics{}
		s.requests[endpointKey] = metrics
	}

	metrics.Count++
	durationMs := data.Duration.Milliseconds()
	metrics.TotalTime += durationMs
	metrics.AvgTime = float64(metrics.TotalTime) / float64(metrics.Count)

	s.totalRequests++

	// Requests sobre 1s se consideran lentos
	if durationMs > 1000 {
		s.slowRequests = append(s.slowRequests, models.SlowRequest{
			Endpoint:  endpointKey,
			Duration:  durationMs,
			Timestamp: data.Timestamp,
		})
		if len(s.slowRequests) > 100 {
			s.slowRequests = s.slowRequests[1:]
		}
	}

	if data.StatusCode >= 400 {
		s.errors = append(s.errors, models.RequestError{
			Endpoint:   endpointKey,
			StatusCode: data.StatusCode,
			Timestamp:  data.Timestamp,
		})
		if len(s.errors) > 100 {
			s.errors = s.errors[1:]
		}
	}
}

// GetMetrics arma el snapshot completo de métricas del servicio
func (s *monitoringService) GetMetrics(ctx context.Context) *models.MonitoringResponse {
	s.requestsMutex.RLock()
	defer s.requestsMutex.RUnlock()

	return &models.MonitoringResponse{
		Requests:    s.calculateRequestMetrics(),
		Performance: s.calculatePerformanceMetrics(),
		Cache:       s.cacheStats(),
		Database:    s.databaseStats(),
		System:      s.systemStats(),
		Redis:       s.redisStats(ctx),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *monitoringService) calculateRequestMetrics() models.RequestMetrics {
	type conteo struct {
		key     string
		metrics *models.EndpointMetrics
	}

	var endpoints []conteo
	byEndpoint := make(map[string]models.EndpointMetrics)
	for key, metrics := range s.requests {
		endpoints = append(endpoints, conteo{key, metrics})
		byEndpoint[key] = *metrics
	}

	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].metrics.Count > endpoints[j].metrics.Count
	})

	var topEndpoints []models.TopEndpoint
	for i, endpoint := range endpoints {
		if i >= 10 {
			break
		}
		topEndpoints = append(topEndpoints, models.TopEndpoint{
			Endpoint:  endpoint.key,
			Count:     endpoint.metrics.Count,
			AvgTimeMs: fmt.Sprintf("%.2fms", endpoint.metrics.AvgTime),
		})
	}

	return models.RequestMetrics{
		TotalRequests:     int(s.totalRequests),
		ByEndpoint:        byEndpoint,
		SlowRequests:      s.slowRequests,
		SlowRequestsCount: len(s.slowRequests),
		Errors:            s.errors,
		ErrorsCount:       len(s.errors),
		TopEndpoints:      topEndpoints,
	}
}

func (s *monitoringService) calculatePerformanceMetrics() models.PerformanceMetrics {
	var totalTime, maxTime int64
	var minTime int64 = math.MaxInt64
	var count int

	for _, metrics := range s.requests {
		totalTime += metrics.TotalTime
		if metrics.TotalTime > maxTime {
			maxTime = metrics.TotalTime
		}
		if metrics.TotalTime < minTime {
			minTime = metrics.TotalTime
		}
		count += metrics.Count
	}

	var avgTime float64
	if count > 0 {
		avgTime = float64(totalTime) / float64(count)
	}
	if minTime == math.MaxInt64 {
		minTime = 0
	}

	return models.PerformanceMetrics{
		AvgResponseTimeMs: fmt.Sprintf("%.2fms", avgTime),
		MaxResponseTimeMs: fmt.Sprintf("%dms", maxTime),
		MinResponseTimeMs: fmt.Sprintf("%dms", minTime),
	}
}

func (s *monitoringService) cacheStats() models.CacheMetrics {
	stats := s.reportCache.GetStats()

	var hitRate float64
	if stats.TotalRequests > 0 {
		hitRate = float64(stats.Hits) / float64(stats.TotalRequests)
	}

	return models.CacheMetrics{
		TotalKeys:         stats.TotalKeys,
		HitRate:           hitRate,
		HitRatePercentage: fmt.Sprintf("%.2f%%", hitRate*100),
		TotalHits:         stats.Hits,
		TotalMisses:       stats.Misses,
		TotalRequests:     stats.TotalRequests,
	}
}

func (s *monitoringService) databaseStats() models.DatabaseMetrics {
	stats := s.dbPool.Stats()

	return models.DatabaseMetrics{
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
		Status:          "online",
	}
}

func (s *monitoringService) systemStats() models.SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(s.startTime).Seconds()

	environment := "production"
	if s.config.Server.GinMode == "debug" {
		environment = "development"
	}

	return models.SystemMetrics{
		UptimeSeconds: uptime,
		UptimeHours:   fmt.Sprintf("%.2fh", uptime/3600),
		HeapUsedMB:    fmt.Sprintf("%.2f MB", float64(m.HeapAlloc)/1024/1024),
		HeapTotalMB:   fmt.Sprintf("%.2f MB", float64(m.HeapSys)/1024/1024),
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS,
		Environment:   environment,
	}
}

func (s *monitoringService) redisStats(ctx context.Context) models.RedisMetrics {
	_, err := s.redisClient.Ping(ctx).Result()
	if err != nil {
		return models.RedisMetrics{Connected: false, Status: "offline"}
	}

	var keys int
	if dbSize, err := s.redisClient.DBSize(ctx).Result(); err == nil {
		keys = int(dbSize)
	}

	return models.RedisMetrics{
		Connected: true,
		Keys:      keys,
		Status:    "online",
	}
}
