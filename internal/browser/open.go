// Package browser hands URLs off to the desktop's default browser,
// used for the terms and privacy pages.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches the system browser at url. The command is started and
// not waited on; an error means no opener exists for this platform.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
