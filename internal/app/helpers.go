package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"courier-delivery-service/internal/repository"
)

var newPool = repository.NewPool

func connectDbWithRetry(ctx context.Context, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	for i := 1; i <= retries; i++ {
		pool, err := connectOnce(ctx, dsn)
		if err == nil {
			log.Printf("db connected on attempt %d", i)
			return pool, nil
		}
		lastErr = err
		log.Printf("db connect failed (attempt %d/%d): %v", i, retries, err)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

func connectOnce(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const attemptTimeout = 3 * time.Second

	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	pool, err := newPool(attemptCtx, dsn)
	if err != nil {
		return nil, err
	}
	if err := repository.EnsureSchema(attemptCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return pool, nil
}
