//go:build unit
// +build unit

package logger

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func maintenanceLogSettings(t *testing.T, level string) *config.LoggerSettings {
	t.Helper()
	return &config.LoggerSettings{
		LogLevel:   level,
		LogType:    config.LogTypeFile,
		FilePath:   filepath.Join(t.TempDir(), "maintenance.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// readJSONLines decodes every line the file logger wrote.
func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), scanner.Text())
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestInitLogger_FileLoggerWritesJSONLines(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)
	settings := maintenanceLogSettings(t, config.LogLevelInfo)

	require.NoError(t, InitLogger(settings))
	log, err := GetLogger()
	require.NoError(t, err)
	require.IsType(t, &FileLogger{}, log)

	log.Infof("Closed %d orders and created %d transactions", 4, 4)
	log.Warn("Scaffolding failed: ", "household h-1")

	lines := readJSONLines(t, settings.FilePath)
	require.Len(t, lines, 2)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "Closed 4 orders and created 4 transactions", lines[0]["msg"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, "Scaffolding failed: household h-1", lines[1]["msg"])
}

func TestFileLogger_CriticalLevel(t *testing.T) {
	settings := maintenanceLogSettings(t, config.LogLevelCritical)
	log := NewFileLogger(settings.LogLevel, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge)

	log.Error("billing period 2025-05 failed")
	assert.PanicsWithValue(t, "database unreachable", func() {
		log.Panic("database unreachable")
	})

	lines := readJSONLines(t, settings.FilePath)
	require.Len(t, lines, 1)
	assert.Equal(t, "CRITICAL", lines[0]["level"])
	assert.Equal(t, "database unreachable", lines[0]["msg"])
}

func TestInitLogger_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings *config.LoggerSettings
	}{
		{"missing settings", nil},
		{"unknown level", &config.LoggerSettings{LogLevel: "verbose", LogType: config.LogTypeConsole}},
		{"unknown type", &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: "syslog"}},
		{"file without rotation", &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile, FilePath: "/var/log/theslope/api.log"}},
		{"file without path", &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile, MaxSize: 10, MaxBackups: 3, MaxAge: 28}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetLoggerSingleton)

			assert.Error(t, InitLogger(tt.settings))
			log, err := GetLogger()
			assert.Error(t, err)
			assert.Nil(t, log)
		})
	}
}

func TestInitLogger_KeepsFirstLogger(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole}))
	first, err := GetLogger()
	require.NoError(t, err)
	require.IsType(t, &ConsoleLogger{}, first)

	// the maintenance commands may ask again with other settings
	require.NoError(t, InitLogger(maintenanceLogSettings(t, config.LogLevelDebug)))
	second, err := GetLogger()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGetLogger_BeforeInit(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	log, err := GetLogger()
	assert.Nil(t, log)
	assert.ErrorContains(t, err, "not initialized")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(config.LogLevelDebug))
	assert.Equal(t, slog.LevelInfo, parseLevel(config.LogLevelInfo))
	assert.Equal(t, slog.LevelWarn, parseLevel(config.LogLevelWarning))
	assert.Equal(t, slog.LevelError, parseLevel(config.LogLevelError))
	assert.Equal(t, LevelCritical, parseLevel(config.LogLevelCritical))
	assert.Greater(t, LevelCritical, slog.LevelError)
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
