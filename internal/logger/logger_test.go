package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "render.txt")
	l := New(path)
	l.Log("first")
	l.Log("second")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "["))
	assert.True(t, strings.HasSuffix(lines[1], "] second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestSlog(t *testing.T) {
	l := New("")
	log := l.Slog(slog.LevelInfo)
	log.Debug("hidden")
	log.Info("mesh created", "name", "CubeMesh", "indices", 36)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], `msg="mesh created" name=CubeMesh indices=36`)
	assert.NotContains(t, lines[0], "time=")
}

func TestLinesBounded(t *testing.T) {
	l := New("")
	for i := 0; i < MaxLines+10; i++ {
		l.Log(fmt.Sprint(i))
	}
	lines := l.Lines()
	require.Len(t, lines, MaxLines)
	assert.True(t, strings.HasSuffix(lines[0], "] 10"))
}
