package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `connection:
  host: myhost
  port: 5433
  username: student
  database: sparkifydb
  sslmode: disable

data:
  song_data: data/song_data
  log_data: data/log_data

log_format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "myhost", cfg.Connection.Host)
	assert.Equal(t, 5433, cfg.Connection.Port)
	assert.Equal(t, "student", cfg.Connection.Username)
	assert.Equal(t, "sparkifydb", cfg.Connection.Database)
	assert.Equal(t, "disable", cfg.Connection.SSLMode)
	assert.Equal(t, "data/song_data", cfg.Data.SongData)
	assert.Equal(t, "data/log_data", cfg.Data.LogData)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `data:
  log_data: /srv/logs
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.Connection.Host)
	assert.Zero(t, cfg.Connection.Port)
	assert.Empty(t, cfg.Data.SongData)
	assert.Equal(t, "/srv/logs", cfg.Data.LogData)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("connection: [unclosed"), 0644))

	cfg, err := LoadFile(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigNotFound))
}
