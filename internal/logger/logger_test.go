package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

func TestLogWritesStampedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "out.txt")
	l := New(path)
	l.now = fixedClock

	l.Log("hello")
	l.Logf("speed %.1f", 2.5)

	assert.Equal(t, []string{"[2024-03-09 14:05:07] hello", "[2024-03-09 14:05:07] speed 2.5"}, l.Lines())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[2024-03-09 14:05:07] hello\n[2024-03-09 14:05:07] speed 2.5\n", string(data))
}

func TestMemoryOnly(t *testing.T) {
	l := New("")
	l.Log("x")
	assert.Len(t, l.Lines(), 1)
	assert.Empty(t, l.Path())
}

func TestHistoryIsBounded(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+20; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[0], "line 20"))
}

func TestTail(t *testing.T) {
	l := New("")
	assert.Nil(t, l.Tail(3))
	l.Log("a")
	l.Log("b")
	l.Log("c")
	tail := l.Tail(2)
	require.Len(t, tail, 2)
	assert.True(t, strings.HasSuffix(tail[0], "b"))
	assert.Len(t, l.Tail(10), 3)
}

func TestWriteSplitsLines(t *testing.T) {
	l := New("")
	l.now = fixedClock
	n, err := l.Write([]byte("Usage of grid:\n  -show\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Equal(t, []string{"[2024-03-09 14:05:07] Usage of grid:", "[2024-03-09 14:05:07]   -show"}, l.Lines())
}
