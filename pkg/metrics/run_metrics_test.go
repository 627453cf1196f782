package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/pkg/metrics"
)

func TestRunMetrics_WriteTextfile(t *testing.T) {
	m := metrics.NewRunMetrics("camp_seed")
	m.ObserveStep("Payments", 3, 1, 2, 4)
	m.ObserveTable("payments", 3)
	m.ObserveRun(1500*time.Millisecond, time.Unix(1756000000, 0))

	path := filepath.Join(t.TempDir(), "camp_seed.prom")
	require.NoError(t, m.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	require.Contains(t, out, `camp_seed_rows{outcome="created",step="Payments"} 3`)
	require.Contains(t, out, `camp_seed_warnings{step="Payments"} 4`)
	require.Contains(t, out, `camp_seed_table_rows{table="payments"} 3`)
	require.Contains(t, out, `camp_seed_duration_seconds 1.5`)
	require.Contains(t, out, "camp_seed_last_success_timestamp_seconds ")
}
