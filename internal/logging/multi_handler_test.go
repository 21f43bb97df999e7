package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ calls int }

func (f *failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (f *failingHandler) Handle(context.Context, slog.Record) error {
	f.calls++
	return errors.New("sink down")
}
func (f *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }
func (f *failingHandler) WithGroup(string) slog.Handler      { return f }

func TestMultiHandlerKeepsFanningOut(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingHandler{}
	jsonHandler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	logger := slog.New(NewMultiHandler(failing, jsonHandler)).With("topic", "customers/update")
	logger.Error("webhook processing failed", "error", "boom")
	logger.Info("ignored by json handler")

	assert.Equal(t, 2, failing.calls)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "webhook processing failed", line["msg"])
	assert.Equal(t, "customers/update", line["topic"])
}
