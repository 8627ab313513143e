package config

import (
	"fmt"
	"slices"
	"strings"
)

// CurrentConfigVersion is written by `cargo-cleaner diagnose` and accepted
// when a config file declares configVersion.
const CurrentConfigVersion = "1"

var supportedConfigVersions = []string{CurrentConfigVersion}

func checkConfigVersion(v string) error {
	if slices.Contains(supportedConfigVersions, v) {
		return nil
	}
	return fmt.Errorf("unsupported configVersion: %q (supported: %s)", v, strings.Join(supportedConfigVersions, ", "))
}
