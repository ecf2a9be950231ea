package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scry.yaml")
	yamlBody := `
debug: true
allow_remote_access: true
ip_whitelist:
  - 127.0.0.1
  - 10.0.0.5
log_directory: ./logs
service_config_file: ./services.manifest
listen_addr: ":9090"
orb_description:
  author: Test Author
  description: Test service
  provenance: unit test
  version: "0.1.0"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, cfg.AllowRemoteAccess)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.5"}, cfg.IPWhitelist)
	assert.Equal(t, "./logs", cfg.LogDirectory)
	assert.Equal(t, "./services.manifest", cfg.ServiceConfigFile)
	assert.Equal(t, "Test Author", cfg.OrbDescription.Author)
	assert.Equal(t, "0.1.0", cfg.OrbDescription.Version)
}

func TestBindAddressHonorsAllowRemoteAccess(t *testing.T) {
	cfg := Default()
	cfg.ListenAddr = ":5000"

	cfg.AllowRemoteAccess = false
	assert.Equal(t, "127.0.0.1:5000", cfg.BindAddress())

	cfg.AllowRemoteAccess = true
	assert.Equal(t, "0.0.0.0:5000", cfg.BindAddress())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestEnsureLogDirectoryCreatesMissingDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.LogDirectory = filepath.Join(dir, "nested", "log")

	require.NoError(t, cfg.EnsureLogDirectory())

	info, err := os.Stat(cfg.LogDirectory)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
