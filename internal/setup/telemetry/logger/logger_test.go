package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalyx/casebot/internal/setup/telemetry/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()

	rb := logger.NewRingBuffer(3)
	assert.Nil(t, rb.Lines())

	rb.Add("a")
	rb.Add("b")
	assert.Equal(t, []string{"a", "b"}, rb.Lines())

	rb.Add("c")
	rb.Add("d")
	rb.Add("e")
	assert.Equal(t, []string{"c", "d", "e"}, rb.Lines())
	assert.Equal(t, 3, rb.Len())
	assert.Equal(t, 3, rb.Cap())
}

func TestLogRotatorCompactsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")
	w, err := logger.NewLogRotator(path, 5)
	require.NoError(t, err)
	defer w.Close()

	for i := range 10 {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, []string{"line 5", "line 6", "line 7", "line 8", "line 9"}, lines)

	// Writes after compaction keep appending
	_, err = fmt.Fprint(w, "line 10\n")
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "line 9\nline 10\n"))
}

func TestLogRotatorBelowCapLeavesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")
	w, err := logger.NewLogRotator(path, 100)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}
