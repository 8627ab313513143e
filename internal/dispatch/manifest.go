package dispatch

import (
	"path/filepath"

	"github.com/malteki/cargo-cleaner/internal/walk"
)

// IsManifest reports whether e is a regular file named exactly Cargo.toml
// or cargo.toml. Other casings are not manifests.
func IsManifest(e walk.Entry) bool {
	if e.Type != walk.TypeFile {
		return false
	}
	switch filepath.Base(e.Path) {
	case "Cargo.toml", "cargo.toml":
		return true
	}
	return false
}
