//go:build darwin

package reveal

import "os/exec"

// open selects path in a Finder window.
func open(path string) error {
	return exec.Command("open", "-R", path).Start()
}
