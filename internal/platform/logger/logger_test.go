package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Info, ParseLevel("loud"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "petcare", Output: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"owner_id": "u1"}).Warn("hn counter burned", map[string]any{
		"counter": int64(3),
		"err":     errors.New("store down"),
		"":        "ignored",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "hn counter burned", entry["msg"])
	assert.Equal(t, "petcare", entry["app"])
	assert.Equal(t, "u1", entry["owner_id"])
	assert.Equal(t, float64(3), entry["counter"])
	assert.Equal(t, "store down", entry["err"])
	assert.NotContains(t, entry, "")
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatText, Output: &buf})

	log.Debug("session expired", map[string]any{"session_id": "s1"})
	assert.Contains(t, buf.String(), "session expired")
	assert.Contains(t, buf.String(), "s1")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("nothing", map[string]any{"a": 1})
	assert.NotNil(t, log.With(map[string]any{"b": 2}))
}
