package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var entries []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "server")

	l.Info().Str("collection", "notes").Msg("document stored")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "notes", entry["collection"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryFields")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// The client log file is appended to, so entries from earlier runs survive.
func TestClientLogWriter_AppendsToFile(t *testing.T) {
	dir := t.TempDir()

	first := newLogger(clientLogWriter(dir), "client")
	first.Info().Msg("sync round started")
	second := newLogger(clientLogWriter(dir), "client")
	second.Warn().Str("collection", "notes").Msg("push failed")

	data, err := os.ReadFile(filepath.Join(dir, "go-offline-sync-client.log"))
	require.NoError(t, err)

	entries := decodeLines(t, data)
	require.Len(t, entries, 2)
	assert.Equal(t, "sync round started", entries[0]["message"])
	assert.Equal(t, "push failed", entries[1]["message"])
	assert.Equal(t, "warn", entries[1]["level"])
	for _, e := range entries {
		assert.Equal(t, "client", e["role"])
	}
}

func TestClientLogWriter_FallsBackToStdout(t *testing.T) {
	w := clientLogWriter(filepath.Join(t.TempDir(), "missing", "dir"))
	assert.Same(t, os.Stdout, w)
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_DoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "server")

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "t-1")
	})

	child.Info().Msg("child")
	parent.Info().Msg("parent")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, "t-1", entries[0]["trace_id"])
	assert.Equal(t, "server", entries[0]["role"])
	assert.NotContains(t, entries[1], "trace_id")
}

func TestFromContext(t *testing.T) {
	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("owner_id", "alice").Logger()
		ctx := zl.WithContext(context.Background())

		FromContext(ctx).Info().Msg("records upserted")

		entries := decodeLines(t, buf.Bytes())
		require.Len(t, entries, 1)
		assert.Equal(t, "alice", entries[0]["owner_id"])
	})

	t.Run("nothing attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}

// Mirrors how the trace middleware hands a request-scoped logger to the
// document handlers.
func TestFromRequest_TraceLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "server").GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc-123")
	})

	req := httptest.NewRequest(http.MethodPut, "/api/documents/notes/n1", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	FromRequest(req).Info().Msg("put document")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 1)
	assert.Equal(t, "abc-123", entries[0]["trace_id"])
	assert.Equal(t, "server", entries[0]["role"])
}
