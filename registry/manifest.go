package registry

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bas-stringer/scry/scryerr"
)

// Registrar is a compiled-in procedure family's registration entry point.
type Registrar func(*Registry) error

// LoadManifest reads a UTF-8 manifest file, one registrar name per line
// (blank lines and '#'-prefixed comments ignored), and invokes the named
// entries from compiled against reg in file order. An unknown name, or an
// entry that fails to register, is a startup error.
func LoadManifest(path string, reg *Registry, compiled map[string]Registrar) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("registry: opening manifest %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		register, ok := compiled[line]
		if !ok {
			return scryerr.ErrRegistryInvalid.New(line,
				fmt.Sprintf("%s:%d: no compiled registrar named %q", path, lineNo, line))
		}
		if err := register(reg); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("registry: reading manifest %s: %w", path, err)
	}
	return nil
}
