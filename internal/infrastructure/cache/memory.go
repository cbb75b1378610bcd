package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/application/loan"
)

var (
	_ auth.TokenRevoker     = (*MemoryStore)(nil)
	_ loan.IdempotencyStore = (*MemoryStore)(nil)
)

// sweepInterval separación mínima entre barridos completos de entradas vencidas.
const sweepInterval = time.Minute

// MemoryStore implementación en memoria. Las entradas vencidas se descartan al consultarlas
// y en un barrido que Revoke y Acquire disparan como mucho una vez por sweepInterval.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time), now: time.Now}
}

// sweep elimina las entradas vencidas si pasó sweepInterval desde el último barrido.
// Requiere mu tomado.
func (s *MemoryStore) sweep() {
	now := s.now()
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
		}
	}
}

// Len número de entradas retenidas, vencidas o no.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// alive indica si key existe y no venció. Requiere mu tomado.
func (s *MemoryStore) alive(key string) bool {
	exp, ok := s.entries[key]
	if !ok {
		return false
	}
	if !s.now().Before(exp) {
		delete(s.entries, key)
		return false
	}
	return true
}

// Revoke marca el token como revocado durante ttl.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.entries[revokedKey(tokenID)] = s.now().Add(ttl)
	return nil
}

// IsRevoked indica si el token fue revocado y aún no expiró.
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive(revokedKey(tokenID)), nil
}

// Acquire registra la clave; false si ya existía y no venció.
func (s *MemoryStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	k := idemKey(key)
	if s.alive(k) {
		return false, nil
	}
	s.entries[k] = s.now().Add(ttl)
	return true, nil
}

// Release elimina la clave.
func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, idemKey(key))
	return nil
}
