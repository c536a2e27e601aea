package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapterTo(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "upper case", level: "WARN", format: "JSON", expectLevel: logrus.WarnLevel, expectJSON: true},
		{name: "invalid level falls back to info", level: "chatty", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogrusAdapterTo(&buf, tt.level, tt.format)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.entry.Logger.Level)
			assert.Same(t, &buf, adapter.entry.Logger.Out)

			_, isJSON := adapter.entry.Logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestNewLogrusAdapterTo_InvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	NewLogrusAdapterTo(&buf, "chatty", "text")
	assert.Contains(t, buf.String(), "Invalid log level 'chatty'")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	adapter, ok := NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.entry.Logger)
}

func TestLogrusAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterTo(&buf, "warn", "json")

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("statement kept", F(FieldFile, "wise.xml"))
	logger.Error("statement failed", F(FieldCount, 2))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "warning", first["level"])
	assert.Equal(t, "statement kept", first["msg"])
	assert.Equal(t, "wise.xml", first[FieldFile])
	assert.Equal(t, "error", second["level"])
	assert.Equal(t, float64(2), second[FieldCount])
}

func TestLogrusAdapter_DerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogrusAdapterTo(&buf, "info", "json")

	derived := base.
		WithField(FieldInputFile, "in.xml").
		WithFields(F(FieldOutputFile, "in_FIXED.xml"), F(FieldStep, "dates")).
		WithError(errors.New("disk full"))
	derived.Error("write failed")
	base.Info("base untouched")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var failed, plain map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &failed))
	require.NoError(t, json.Unmarshal(lines[1], &plain))

	assert.Equal(t, "in.xml", failed[FieldInputFile])
	assert.Equal(t, "in_FIXED.xml", failed[FieldOutputFile])
	assert.Equal(t, "dates", failed[FieldStep])
	assert.Equal(t, "disk full", failed[FieldError])
	assert.NotContains(t, plain, FieldInputFile)
	assert.NotContains(t, plain, FieldError)
}

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{F("a", "x"), F("b", 42)})
	assert.Equal(t, logrus.Fields{"a": "x", "b": 42}, fields)
	assert.Empty(t, convertFields(nil))
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	logger.Error("nothing to see", F("k", "v"))
	logger.WithError(errors.New("x")).Warn("still nothing")
}

func TestMockLogger_SharesEntriesWithDerivedLoggers(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("first")
	mock.WithField(FieldStep, "status").Debug("second")
	mock.WithError(errors.New("boom")).Error("third", F(FieldCount, 1))

	entries := mock.GetEntries()
	require.Len(t, entries, 3)
	assert.True(t, mock.HasEntry("INFO", "first"))
	assert.Equal(t, []Field{{Key: FieldStep, Value: "status"}}, entries[1].Fields)
	assert.EqualError(t, entries[2].Error, "boom")
	assert.Len(t, mock.GetEntriesByLevel("ERROR"), 1)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Warn("zero value")
	assert.True(t, mock.HasEntry("WARN", "zero value"))
}
