package pkgroot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DescriptorName is the manifest file looked up by Locate.
const DescriptorName = "package.json"

// ErrDescriptorNotFound is returned when no ancestor directory holds a package.json.
var ErrDescriptorNotFound = errors.New("package.json not found")

// Locate walks up from startDir and returns the absolute path of the nearest
// readable package.json. Errors other than "does not exist" stop the walk and
// are returned as they are.
func Locate(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, DescriptorName)
		f, err := os.Open(candidate)
		if err == nil {
			f.Close()
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched up from %s)", ErrDescriptorNotFound, startDir)
		}
		dir = parent
	}
}
