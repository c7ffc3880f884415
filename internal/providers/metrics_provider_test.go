package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addrbook/internal/structures"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncCommandsTotal("add", "ok")
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration("save", time.Millisecond)
	m.SetContactsTotal(10)
	assert.NoError(t, m.Flush())
}

func TestMetricsProvider_Counts(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m, ok := NewMetricsProvider(conf).(*MetricsProvider)
	require.True(t, ok)

	m.IncCommandsTotal("add", "ok")
	m.IncCommandsTotal("add", "ok")
	m.IncCommandsTotal("delete", "not_found")
	m.IncCacheHits()
	m.SetContactsTotal(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsTotal.WithLabelValues("delete", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.contactsTotal))
}

func TestMetricsProvider_SeparateRegistries(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}

	// a second provider must not panic on duplicate registration
	assert.NotPanics(t, func() {
		NewMetricsProvider(conf)
		NewMetricsProvider(conf)
	})
}

func TestMetricsProvider_FlushWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addrbook.prom")
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true, TextFile: path},
	}
	m := NewMetricsProvider(conf)
	m.IncCommandsTotal("add", "ok")
	m.ObservePersistenceDuration("save", 5*time.Millisecond)

	require.NoError(t, m.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `addrbook_commands_total{command="add",result="ok"} 1`)
	assert.Contains(t, string(data), "addrbook_persistence_duration_seconds")
}

func TestMetricsProvider_FlushWithoutTextfile(t *testing.T) {
	conf := &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}
	assert.NoError(t, NewMetricsProvider(conf).Flush())
}
