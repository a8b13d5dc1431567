package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheStats estadísticas del caché
type CacheStats struct {
	Hits          int64
	Misses        int64
	TotalRequests int64
	TotalKeys     int
}

const redisPrefijo = "reporte:"

// entradaL1 payload cacheado con su expiración
type entradaL1 struct {
	payload  []byte
	expiraEn time.Time
}

// ReportCache implementa caché multi-nivel para los reportes agregados.
// Los reportes recalculan sobre todas las ventas, así que cachear el JSON
// ya serializado evita repetir la agregación en cada consulta del dashboard.
type ReportCache struct {
	// L1: memoria local (más rápido)
	l1Cache map[string]entradaL1
	l1Mutex sync.RWMutex

	// L2: Redis (compartido entre instancias)
	redisClient *redis.Client

	maxL1Size int
	ttl       time.Duration

	logger *zap.Logger

	statsMutex sync.RWMutex
	hits       int64
	misses     int64
}

// NewReportCache crea una nueva instancia del caché
func NewReportCache(redisClient *redis.Client, maxL1Size int, ttl time.Duration, logger *zap.Logger) *ReportCache {
	rc := &ReportCache{
		l1Cache:     make(map[string]entradaL1),
		redisClient: redisClient,
		maxL1Size:   maxL1Size,
		ttl:         ttl,
		logger:      logger,
	}

	// Limpieza periódica de entradas vencidas del L1
	go rc.cleanupL1Cache()

	return rc
}

// Get busca un reporte serializado con caché multi-nivel
func (rc *ReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	start := time.Now()

	if payload := rc.getFromL1(key); payload != nil {
		rc.recordHit()
		rc.logger.Debug("L1 cache hit",
			zap.String("reporte", key),
			zap.Duration("latency", time.Since(start)))
		return payload, true
	}

	if payload, err := rc.getFromL2(ctx, key); err == nil && payload != nil {
		rc.setToL1(key, payload)
		rc.recordHit()
		rc.logger.Debug("L2 cache hit",
			zap.String("reporte", key),
			zap.Duration("latency", time.Since(start)))
		return payload, true
	}

	rc.recordMiss()
	rc.logger.Debug("Cache miss",
		zap.String("reporte", key),
		zap.Duration("latency", time.Since(start)))

	return nil, false
}

// Set almacena un reporte serializado en ambos niveles
func (rc *ReportCache) Set(ctx context.Context, key string, payload []byte) error {
	rc.setToL1(key, payload)
	return rc.setToL2(ctx, key, payload)
}

// InvalidateAll vacía ambos niveles. Se llama tras cualquier mutación de
// ventas, cobros, artículos o clientes: cualquier reporte puede quedar viejo.
func (rc *ReportCache) InvalidateAll(ctx context.Context) error {
	rc.l1Mutex.Lock()
	rc.l1Cache = make(map[string]entradaL1)
	rc.l1Mutex.Unlock()

	keys, err := rc.redisClient.Keys(ctx, redisPrefijo+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rc.redisClient.Del(ctx, keys...).Err()
}

// GetStats retorna estadísticas del caché
func (rc *ReportCache) GetStats() CacheStats {
	rc.statsMutex.RLock()
	defer rc.statsMutex.RUnlock()

	rc.l1Mutex.RLock()
	totalKeys := len(rc.l1Cache)
	rc.l1Mutex.RUnlock()

	return CacheStats{
		Hits:          rc.hits,
		Misses:        rc.misses,
		TotalRequests: rc.hits + rc.misses,
		TotalKeys:     totalKeys,
	}
}

func (rc *ReportCache) recordHit() {
	rc.statsMutex.Lock()
	rc.hits++
	rc.statsMutex.Unlock()
}

func (rc *ReportCache) recordMiss() {
	rc.statsMutex.Lock()
	rc.misses++
	rc.statsMutex.Unlock()
}

// getFromL1 obtiene un reporte del L1, descartando entradas vencidas
func (rc *ReportCache) getFromL1(key string) []byte {
	rc.l1Mutex.RLock()
	entrada, ok := rc.l1Cache[key]
	rc.l1Mutex.RUnlock()

	if !ok {
		return nil
	}
	if time.Now().After(entrada.expiraEn) {
		rc.l1Mutex.Lock()
		delete(rc.l1Cache, key)
		rc.l1Mutex.Unlock()
		return nil
	}
	return entrada.payload
}

func (rc *ReportCache) setToL1(key string, payload []byte) {
	rc.l1Mutex.Lock()
	defer rc.l1Mutex.Unlock()

	if len(rc.l1Cache) >= rc.maxL1Size {
		rc.evict()
	}

	rc.l1Cache[key] = entradaL1{
		payload:  payload,
		expiraEn: time.Now().Add(rc.ttl),
	}
}

// evict elimina una entrada arbitraria cuando el L1 está lleno
func (rc *ReportCache) evict() {
	for key := range rc.l1Cache {
		delete(rc.l1Cache, key)
		break
	}
}

func (rc *ReportCache) getFromL2(ctx context.Context, key string) ([]byte, error) {
	data, err := rc.redisClient.Get(ctx, redisPrefijo+key).Bytes()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (rc *ReportCache) setToL2(ctx context.Context, key string, payload []byte) error {
	return rc.redisClient.Set(ctx, redisPrefijo+key, payload, rc.ttl).Err()
}

// cleanupL1Cache elimina periódicamente las entradas vencidas del L1
func (rc *ReportCache) cleanupL1Cache() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ahora := time.Now()
		rc.l1Mutex.Lock()
		for key, entrada := range rc.l1Cache {
			if ahora.After(entrada.expiraEn) {
				delete(rc.l1Cache, key)
			}
		}
		rc.logger.Debug("L1 cache cleanup", zap.Int("items", len(rc.l1Cache)))
		rc.l1Mutex.Unlock()
	}
}

// Stats retorna estadísticas del caché como mapa para el endpoint de métricas
func (rc *ReportCache) Stats() map[string]interface{} {
	stats := rc.GetStats()
	hitRate := 0.0
	if stats.TotalRequests > 0 {
		hitRate = float64(stats.Hits) / float64(stats.TotalRequests)
	}
	return map[string]interface{}{
		"hits":           stats.Hits,
		"misses":         stats.Misses,
		"total_requests": stats.TotalRequests,
		"total_keys":     stats.TotalKeys,
		"hit_rate":       hitRate,
	}
}
