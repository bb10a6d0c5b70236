package db

import (
	"context"
	"fmt"
	"fxconverter/internal/config"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// CreatePoolAndPing opens the pool and fails fast when the database is unreachable.
func CreatePoolAndPing(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	logrus.WithFields(logrus.Fields{"host": cfg.Host, "db": cfg.Name, "max_conns": poolCfg.MaxConns}).Debug("DB pool ready")
	return pool, nil
}
