// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Host describes the machine modrules is running on
type Host struct {
	OS       string   // linux, darwin, windows
	Arch     string   // amd64, arm64, 386
	Platform Platform // Matching engine platform
}

// Detect maps the running OS/architecture to an engine platform
func Detect() (*Host, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) (*Host, error) {
	h := &Host{
		OS:   goos,
		Arch: goarch,
	}

	switch goos {
	case "windows":
		if goarch == "386" {
			h.Platform = Win32
		} else {
			h.Platform = Win64
		}
	case "darwin":
		h.Platform = Mac
	case "linux":
		if goarch == "arm64" {
			h.Platform = LinuxArm64
		} else {
			h.Platform = Linux
		}
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}

	return h, nil
}

// String returns a string representation of the host
func (h *Host) String() string {
	return fmt.Sprintf("%s/%s (%s)", h.OS, h.Arch, h.Platform)
}
