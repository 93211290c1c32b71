// Package cliutil holds path validation shared by the converter and
// comparer command-line entrypoints: a file must exist and carry one of
// the three whitelisted ledger extensions before either binary invokes
// the codec against it.
package cliutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExtensionWhitelist lists the file extensions (without the leading dot)
// accepted as ledger input/output paths.
var ExtensionWhitelist = []string{"bin", "csv", "txt"}

// ValidatePath checks that path exists and carries a whitelisted
// extension, returning a descriptive error otherwise. It never inspects
// file contents; format selection is driven entirely by the CLI's
// explicit --*-format flags.
func ValidatePath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("cliutil: file not found: %s", path)
		}
		return fmt.Errorf("cliutil: %s: %w", path, err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, allowed := range ExtensionWhitelist {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("cliutil: unsupported file extension %q for %s (expected one of %v)", ext, path, ExtensionWhitelist)
}
