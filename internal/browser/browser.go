package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the system browser at rawURL. Only http and https links
// are allowed since article links come from untrusted feed content.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "windows":
		// rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}
