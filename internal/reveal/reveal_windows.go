//go:build windows

package reveal

import "os/exec"

// open selects path in an Explorer window.
func open(path string) error {
	return exec.Command("explorer", "/select,", path).Start()
}
