// Package reveal opens the platform file manager with a path selected. The
// action is fire-and-forget: the spawned process is never waited on, and
// failures are reported to the caller without affecting anything else.
package reveal

import (
	"fmt"
	"os"
)

// Reveal shows path in the native file manager, selecting it where the
// platform supports selection. It returns once the file manager process has
// been started.
func Reveal(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("revealing %q: %w", path, err)
	}

	if err := open(path); err != nil {
		return fmt.Errorf("revealing %q: %w", path, err)
	}

	return nil
}
