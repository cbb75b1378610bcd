// Package cache guarda estado efímero con expiración: tokens revocados y claves de idempotencia.
// RedisStore se usa cuando hay REDIS_ADDR; MemoryStore es el respaldo de un solo proceso.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
)

var (
	_ auth.TokenRevoker     = (*RedisStore)(nil)
	_ loan.IdempotencyStore = (*RedisStore)(nil)
)

// RedisStore implementa revocación e idempotencia sobre Redis con TTL nativo.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore construye el store sobre un cliente ya configurado.
func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func revokedKey(tokenID string) string { return "peminjaman:auth:revoked:" + tokenID }
func idemKey(key string) string        { return "peminjaman:idem:" + key }

// Revoke marca el token como revocado durante ttl.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

// IsRevoked indica si el token fue revocado y aún no expiró.
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Acquire registra la clave con SETNX; false si ya existía.
func (s *RedisStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, idemKey(key), "1", ttl).Result()
}

// Release elimina la clave para permitir un reintento.
func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, idemKey(key)).Err()
}

// Ping verifica la conexión (health check).
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
