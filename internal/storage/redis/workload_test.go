package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

const key = "orbit:sector_workload"

func newSource(t *testing.T) (*WorkloadSource, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewWithClient(client, key, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestSectorWorkload(t *testing.T) {
	src, mr := newSource(t)

	mr.HSet(key, "Solda", "0.95", "Pintura", "0.4", "Corte", "abc")

	got, err := src.SectorWorkload(context.Background(), []string{"Solda", "Pintura", "Corte", "Montagem"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Solda": 0.95, "Pintura": 0.4}, got)
}

func TestSectorWorkload_SkipsNonFinite(t *testing.T) {
	src, mr := newSource(t)

	mr.HSet(key, "Solda", "NaN", "Pintura", "+Inf", "Corte", "-inf", "Montagem", "0.7")

	got, err := src.SectorWorkload(context.Background(), []string{"Solda", "Pintura", "Corte", "Montagem"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Montagem": 0.7}, got)
}

func TestSectorWorkload_MissingKey(t *testing.T) {
	src, _ := newSource(t)

	got, err := src.SectorWorkload(context.Background(), []string{"Solda"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSectorWorkload_ServerDown(t *testing.T) {
	src, mr := newSource(t)
	mr.Close()

	_, err := src.SectorWorkload(context.Background(), []string{"Solda"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.redis.SectorWorkload")
}

func TestSaveSectorWorkload(t *testing.T) {
	src, mr := newSource(t)

	err := src.SaveSectorWorkload(context.Background(), []storage.SectorWorkload{
		{StageName: "Solda", Workload: 0.85},
		{StageName: "Pintura", Workload: 0.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.85", mr.HGet(key, "Solda"))
	assert.Equal(t, "0.5", mr.HGet(key, "Pintura"))

	got, err := src.SectorWorkload(context.Background(), []string{"Solda"})
	require.NoError(t, err)
	assert.InDelta(t, 0.85, got["Solda"], 1e-9)
}
