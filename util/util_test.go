package util
import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFixUnicode(t *testing.T) {
	// "e" + combining acute accent becomes a single code point
	assert.Equal(t, "\u00e9", FixUnicode("e\u0301"))
	assert.Equal(t, "plain ascii", FixUnicode("plain ascii"))
}

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "photos/cat-hidden.png", OutputFilename("photos/cat.jpg", "png"))
	assert.Equal(t, "cat-hidden.gif", OutputFilename("cat.gif", ".gif"))
}

func TestReadFilesAndPickDecoy(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.JPG", "c.txt", "d.gif"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "e.png"), 0700))

	files, err := ReadFiles(dir, DecoyExtensions)
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "d.gif"),
	}, files)

	decoy, err := PickDecoy(dir)
	require.NoError(t, err)
	assert.Contains(t, files, decoy)

	_, err = PickDecoy(t.TempDir())
	assert.Error(t, err, "Empty folder should have no decoys")
}

func TestRandInt(t *testing.T) {
	assert.Equal(t, 0, RandInt(0))
	for i := 0; i < 100; i++ {
		n := RandInt(3)
		assert.True(t, n >= 0 && n < 3, "RandInt out of range: %d", n)
	}
}

func TestLoggerModes(t *testing.T) {
	li := &LoggerInfo{Mode: Error | Info}
	assert.True(t, li.enabled(zapcore.ErrorLevel))
	assert.True(t, li.enabled(zapcore.InfoLevel))
	assert.False(t, li.enabled(zapcore.WarnLevel))
	assert.False(t, li.enabled(zapcore.DebugLevel))
}

func TestLoggerWritesFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "stegende.log")
	logger := NewLogger(&LoggerInfo{Filename: filename, Mode: Error | Warning})
	logger.Warn("capacity is low")
	logger.Info("not written")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN")
	assert.Contains(t, string(data), "capacity is low")
	assert.NotContains(t, string(data), "not written")
}
