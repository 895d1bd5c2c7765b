//go:build !windows && !darwin

package reveal

import (
	"os/exec"
	"path/filepath"
)

// open shows path's directory in the default file manager. xdg-open cannot
// select an entry, so the containing directory is the best available.
func open(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}
