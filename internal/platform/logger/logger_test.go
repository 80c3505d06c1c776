package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger_MergesBaseAndCallFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Options{Level: Info, Format: FormatJSON, App: "vet-clinic"})

	l.With(map[string]any{"module": "appointments"}).Info("scheduled", map[string]any{"vet": "Dr. X", "": "dropped"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "scheduled", entry["message"])
	assert.Equal(t, "vet-clinic", entry["app"])
	assert.Equal(t, "appointments", entry["module"])
	assert.Equal(t, "Dr. X", entry["vet"])
	assert.NotContains(t, entry, "")
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Options{Level: Warn, Format: FormatJSON})

	l.Info("ignored", nil)
	assert.Zero(t, buf.Len())

	l.Warn("kept", nil)
	assert.NotZero(t, buf.Len())
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat(""))
}
