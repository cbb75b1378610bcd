package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Revocacion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Minute))
	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = s.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = s.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "la revocación vence con el token")
}

func TestMemoryStore_IdempotenciaAcquireRelease(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ok, err := s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Acquire(ctx, "k", time.Minute)
	assert.False(t, ok, "segunda vez es duplicado")

	require.NoError(t, s.Release(ctx, "k"))
	ok, _ = s.Acquire(ctx, "k", time.Minute)
	assert.True(t, ok, "tras liberar se puede reintentar")
}

func TestMemoryStore_BarridoEliminaVencidas(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		ok, err := s.Acquire(ctx, fmt.Sprintf("req-%d", i), time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.NoError(t, s.Revoke(ctx, "jti-viejo", time.Millisecond))
	require.NoError(t, s.Revoke(ctx, "jti-vigente", time.Hour))
	assert.Equal(t, 1002, s.Len())

	// Antes de sweepInterval no hay barrido completo.
	now = now.Add(time.Second)
	_, _ = s.Acquire(ctx, "otra", time.Hour)
	assert.Equal(t, 1003, s.Len())

	now = now.Add(sweepInterval)
	ok, err := s.Acquire(ctx, "nueva", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, s.Len(), "quedan jti-vigente, otra y nueva")

	revoked, _ := s.IsRevoked(ctx, "jti-vigente")
	assert.True(t, revoked)
}

func TestMemoryStore_AcquireConcurrenteSoloUnoGana(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Acquire(ctx, "same", time.Minute); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/cache
func TestRedisStore_Integracion(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer rdb.Close()
	s := NewRedisStore(rdb)

	key := "test-" + time.Now().Format(time.RFC3339Nano)
	ok, err := s.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Release(ctx, key))

	require.NoError(t, s.Revoke(ctx, key, time.Minute))
	revoked, err := s.IsRevoked(ctx, key)
	require.NoError(t, err)
	assert.True(t, revoked)
}
