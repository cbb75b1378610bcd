package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/domain/repository"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/store"
	"github.com/jhoicas/Peminjaman-api/pkg/config"
)

func TestOpen_SQLiteEnMemoria(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}}

	s, err := store.Open(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, config.DriverSQLite, s.Driver)
	assert.NoError(t, s.Ping(ctx))

	list, err := s.Komoditas.List(ctx, repository.KomoditasFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := store.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "mysql"}})
	assert.Error(t, err)
}
