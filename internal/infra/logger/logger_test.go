package logger

import (
	"os"
	"path/filepath"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAppendsToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	closer, err := Init(&config.AppConfig{LogLevel: "debug", Environment: "development", LogFile: path})
	require.NoError(t, err)

	Component("test").Error("cycle failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous run")
	assert.Contains(t, string(data), "level=error")
	assert.Contains(t, string(data), "cycle failed")
	assert.Contains(t, string(data), "component=test")
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.log")
	closer, err := Init(&config.AppConfig{LogLevel: "loud", Environment: "production", LogFile: path})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.InfoLevel, Get().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Get().Formatter)
}

func TestInitUnwritableLogFile(t *testing.T) {
	_, err := Init(&config.AppConfig{LogLevel: "info", LogFile: filepath.Join(t.TempDir(), "missing", "main.log")})
	assert.Error(t, err)
}
