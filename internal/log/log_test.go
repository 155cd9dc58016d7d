package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/redline/internal/pubsub"
)

func initTestLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redline.log")
	cleanup, err := InitWithTeaLog(path, "test")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInitWithTeaLog_WritesFormattedEntries(t *testing.T) {
	path := initTestLogger(t)

	Info(CatApp, "starting up", "width", 80)

	out := readLog(t, path)
	require.Contains(t, out, "[INFO] [app] starting up width=80")
}

func TestSetMinLevel_FiltersBelow(t *testing.T) {
	path := initTestLogger(t)

	SetMinLevel(LevelWarn)
	Debug(CatToken, "scanned")
	Info(CatMask, "installed")
	Warn(CatApp, "recompute failed")

	out := readLog(t, path)
	require.NotContains(t, out, "scanned")
	require.NotContains(t, out, "installed")
	require.Contains(t, out, "[WARN] [app] recompute failed")
}

func TestErrorErr_AppendsErrorField(t *testing.T) {
	path := initTestLogger(t)

	ErrorErr(CatSpell, "init failed", os.ErrNotExist, "path", "/tmp/en.dic")

	out := readLog(t, path)
	require.Contains(t, out, "[ERROR] [spell] init failed")
	require.Contains(t, out, "path=/tmp/en.dic")
	require.Contains(t, out, "error="+os.ErrNotExist.Error())
}

func TestLog_OddFieldCountIsMarked(t *testing.T) {
	path := initTestLogger(t)

	Info(CatUI, "keystroke", "dangling")

	require.Contains(t, readLog(t, path), "dangling=<missing>")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"Warn", LevelWarn, true},
		{"error", LevelError, true},
		{"1", LevelDebug, false},
		{"", LevelDebug, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.in)
		require.Equal(t, tt.ok, ok, "ParseLevel(%q)", tt.in)
		require.Equal(t, tt.level, level, "ParseLevel(%q)", tt.in)
	}
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	initTestLogger(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Info(CatWatcher, "dictionary changed", "file", "en_US.dic")

	msg := l.Listen()()
	event, ok := msg.(pubsub.Event[string])
	require.True(t, ok)
	require.Equal(t, pubsub.EntryEvent, event.Type)
	require.Contains(t, event.Payload, "[INFO] [watcher] dictionary changed file=en_US.dic")
}
