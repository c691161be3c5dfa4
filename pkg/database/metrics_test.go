package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolStatsCollector(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	collector := NewPoolStatsCollector(db, "catalog")

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(collector))

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["db_pool_open_connections"])
	assert.True(t, names["db_pool_in_use_connections"])
	assert.True(t, names["db_pool_max_open_connections"])
	assert.True(t, names["db_pool_wait_count_total"])
}

func TestPoolStatsCollector_Describe(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	collector := NewPoolStatsCollector(db, "catalog")

	ch := make(chan *prometheus.Desc, 16)
	collector.Describe(ch)
	close(ch)

	var count int
	for range ch {
		count++
	}
	assert.Equal(t, 8, count)
}
