package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ormwire/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func chainedError() error {
	inner := zerr.With(zerr.New("failed to read config file"), "path", "/etc/ormwire.yaml")
	return zerr.With(zerr.Wrap(inner, "service not found"), "service_id", "app.listener")
}

func TestLogger_Error_Pretty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)
	lg.Error(chainedError())

	g := goldie.New(t)
	g.Assert(t, "logger_error_chain", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.NewWithWriter(buf).Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithWriter(buf)
	lg.SetJSON(true)

	lg.Warn("replica keys renamed")
	lg.Error(chainedError())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var warn map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &warn))
	assert.Equal(t, "WARN", warn["level"])
	assert.Equal(t, "replica keys renamed", warn["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "service not found", failure["error"])
	assert.Equal(t, "app.listener", failure["service_id"])
	assert.Equal(t, []any{"failed to read config file"}, failure["causes"])
}

func TestLogger_SetOutputKeepsMode(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}

	lg := logger.NewWithWriter(first)
	lg.SetJSON(true)
	lg.SetOutput(second)
	lg.Info("moved")

	assert.Empty(t, first.String())
	assert.True(t, json.Valid(bytes.TrimSpace(second.Bytes())))
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "wrapped chain ending in a standard error",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "metadata on both levels",
			err:          chainedError(),
			wantMessages: []string{"service not found", "failed to read config file"},
			wantMetadata: []map[string]any{
				{"service_id": "app.listener"},
				{"path": "/etc/ormwire.yaml"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			require.Len(t, entries, len(tt.wantMessages))
			for i, want := range tt.wantMessages {
				assert.Equal(t, want, entries[i].Message, "message at %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata at %d", i)
			}
		})
	}

	assert.Empty(t, logger.CollectErrorEntriesExported(nil))
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{"empty", []logger.ErrorEntry{}, ""},
		{"single", []logger.ErrorEntry{{Message: "single error"}}, "Error: single error"},
		{
			"causes",
			[]logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			"Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			"sorted metadata",
			[]logger.ErrorEntry{{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a"}}},
			"Error: error\n       alpha: a\n       zebra: z",
		},
		{
			"multiline cause with metadata",
			[]logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause line1\ncause line2", Metadata: map[string]any{"cycle": "a -> b -> a"}},
			},
			"Error: main\n\n  Caused by:\n    → cause line1\n      cause line2\n      cycle: a -> b -> a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}
