package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bas-stringer/scry/scryerr"
)

func TestLoadManifestRegistersNamedEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.manifest")
	body := "# comment\n\nalpha\nbeta\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	var registered []string
	compiled := map[string]Registrar{
		"alpha": func(r *Registry) error { registered = append(registered, "alpha"); return nil },
		"beta":  func(r *Registry) error { registered = append(registered, "beta"); return nil },
		"gamma": func(r *Registry) error { registered = append(registered, "gamma"); return nil },
	}

	reg := NewRegistry()
	require.NoError(t, LoadManifest(path, reg, compiled))
	assert.Equal(t, []string{"alpha", "beta"}, registered)
}

func TestLoadManifestRejectsUnknownRegistrar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.manifest")
	require.NoError(t, os.WriteFile(path, []byte("nonexistent\n"), 0o644))

	reg := NewRegistry()
	err := LoadManifest(path, reg, map[string]Registrar{})
	assert.Error(t, err)
	assert.True(t, scryerr.ErrRegistryInvalid.Is(err))
}

func TestLoadManifestMissingFile(t *testing.T) {
	reg := NewRegistry()
	err := LoadManifest(filepath.Join(t.TempDir(), "missing.manifest"), reg, map[string]Registrar{})
	assert.Error(t, err)
}
