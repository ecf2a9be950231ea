// Package config loads the process-wide options a scryd server is started
// with: the debug/bind-address flags, the IP allowlist, the log directory,
// the registry manifest path, and the service's own self-description, as a
// single YAML document — the way roach88-nysm's CLI loads its own process
// configuration from a file rather than from code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OrbDescription is the service's own self-description, attached to the
// orb-description graph the same way each procedure carries its own
// author/description/provenance/version.
type OrbDescription struct {
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	Provenance  string `yaml:"provenance"`
	Version     string `yaml:"version"`
}

// Config holds every process-wide option scryd accepts.
type Config struct {
	// Debug enables verbose, flask-like debug logging.
	Debug bool `yaml:"debug"`
	// AllowRemoteAccess binds to all interfaces when true, loopback only
	// when false.
	AllowRemoteAccess bool `yaml:"allow_remote_access"`
	// IPWhitelist lists the client IP strings permitted to query the
	// endpoint.
	IPWhitelist []string `yaml:"ip_whitelist"`
	// LogDirectory is the directory per-request and per-response logs are
	// written under; created if missing.
	LogDirectory string `yaml:"log_directory"`
	// ServiceConfigFile is the path to the registry manifest (see
	// registry.LoadManifest).
	ServiceConfigFile string `yaml:"service_config_file"`
	// OrbDescription is this service instance's own self-description.
	OrbDescription OrbDescription `yaml:"orb_description"`
	// ListenAddr is the host:port scryd binds to, pairing with
	// AllowRemoteAccess to pick loopback vs. all interfaces.
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration a freshly installed service starts
// with: loopback-only, an empty allowlist, and logs under ./log.
func Default() *Config {
	return &Config{
		AllowRemoteAccess: false,
		LogDirectory:      "./log",
		ListenAddr:        ":5000",
	}
}

// Load reads and parses a YAML configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// BindAddress returns the address the HTTP server should listen on,
// honoring AllowRemoteAccess: "0.0.0.0:<port>" when remote access is
// allowed, "127.0.0.1:<port>" (loopback) otherwise.
func (c *Config) BindAddress() string {
	_, port := splitHostPort(c.ListenAddr)
	if c.AllowRemoteAccess {
		return "0.0.0.0:" + port
	}
	return "127.0.0.1:" + port
}

func splitHostPort(addr string) (host, port string) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:]
		}
	}
	return "", addr
}

// EnsureLogDirectory creates LogDirectory (and any missing parents) if it
// does not already exist.
func (c *Config) EnsureLogDirectory() error {
	if c.LogDirectory == "" {
		return nil
	}
	return os.MkdirAll(c.LogDirectory, 0o755)
}
