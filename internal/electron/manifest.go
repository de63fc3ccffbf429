package electron

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// manifestName is the package name a manifest must carry to count as the
// tool's own. The fast path deliberately equates "this tool's version" with
// "the electron version to acquire"; see DESIGN.md.
const manifestName = "collider"

type packageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// currentColliderVersion walks up from the directory containing exePath
// looking for a package.json named "collider" and returns its version.
// The second return is false when no manifest was found; parse and
// filesystem failures propagate rather than being downgraded to a miss.
func currentColliderVersion(exePath string) (*version.Version, bool, error) {
	dir := filepath.Dir(exePath)
	for {
		pkgPath := filepath.Join(dir, "package.json")
		data, err := os.ReadFile(pkgPath)
		switch {
		case err == nil:
			var pkg packageManifest
			if err := json.Unmarshal(data, &pkg); err != nil {
				return nil, false, manifestJSONError(pkgPath, err)
			}
			if pkg.Name == manifestName {
				v, err := version.Parse(pkg.Version)
				if err != nil {
					return nil, false, err
				}
				return v, true, nil
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, false, fmt.Errorf(messages.ElectronReadManifestFmt, pkgPath, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false, nil
		}
		dir = parent
	}
}

// manifestJSONError attaches the byte offset of the syntax failure when the
// decoder provides one.
func manifestJSONError(path string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &JSONError{Path: path, Offset: syntaxErr.Offset, Err: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &JSONError{Path: path, Offset: typeErr.Offset, Err: err}
	}
	return &JSONError{Path: path, Err: err}
}
