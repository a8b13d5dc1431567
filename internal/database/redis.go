package database

import (
	"context"
	"fmt"
	"time"

	"ventas-service/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisDB envuelve el cliente de Redis que respalda el caché de reportes
type RedisDB struct {
	Client *redis.Client
}

// NewRedisDB conecta a Redis a partir de la URL configurada. Una contraseña
// explícita en la configuración tiene prioridad sobre la de la URL.
func NewRedisDB(cfg config.RedisConfig, logger *zap.Logger) (*RedisDB, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info("✅ Conexión a Redis establecida",
		zap.String("addr", opt.Addr),
		zap.Int("db", cfg.DB),
	)

	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() error {
	return r.Client.Close()
}

func (r *RedisDB) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// GetStats retorna estadísticas básicas de Redis
func (r *RedisDB) GetStats(ctx context.Context) (string, error) {
	info := r.Client.Info(ctx, "stats")
	return info.Result()
}
