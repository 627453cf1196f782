package itf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeDBName(t *testing.T) {
	require.Equal(t, "testpipeline_run_twice", sanitizeDBName("TestPipeline/Run twice"))
	require.Equal(t, "test_db", sanitizeDBName("///"))
	require.Equal(t, "t_2025_import", sanitizeDBName("2025 import"))

	long := "Test" + strings.Repeat("VeryLongSubtestName/", 10)
	got := sanitizeDBName(long)
	require.LessOrEqual(t, len(got), maxDBNameLength)
	require.NotEqual(t, got, sanitizeDBName(long+"x"))
}
