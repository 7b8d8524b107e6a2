package export

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// EnvExportPath overrides the export destination when set.
const EnvExportPath = "TIME_CLOCK_EXPORT_PATH"

// usbBases are the mount roots scanned for removable drives.
var usbBases = []string{"/media", "/run/media", "/mnt"}

// FindUSBMounts returns available USB mountpoints: direct mounts under
// the bases plus one level of nesting (/media/<user>/<drive>).
func FindUSBMounts() []string {
	var mounts []string
	for _, base := range usbBases {
		children, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, child := range children {
			path := filepath.Join(base, child.Name())
			if isMountpoint(path) {
				mounts = append(mounts, path)
				continue
			}
			if !child.IsDir() {
				continue
			}
			grandchildren, err := os.ReadDir(path)
			if err != nil {
				continue
			}
			for _, gc := range grandchildren {
				gcPath := filepath.Join(path, gc.Name())
				if isMountpoint(gcPath) {
					mounts = append(mounts, gcPath)
				}
			}
		}
	}
	return mounts
}

// ResolveExportDir determines where exports should be written.
//
// Priority:
//  1. TIME_CLOCK_EXPORT_PATH environment variable (expanded)
//  2. First mounted USB drive under /media, /run/media, /mnt
//  3. Local exports/ directory under the working directory
//
// The directory is created if missing.
func ResolveExportDir(preferUSB bool) (string, error) {
	var target string
	if env := os.Getenv(EnvExportPath); env != "" {
		target = expandHome(env)
	} else {
		var usb []string
		if preferUSB {
			usb = FindUSBMounts()
		}
		if len(usb) > 0 {
			target = usb[0]
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			target = filepath.Join(wd, "exports")
		}
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", err
	}
	return target, nil
}

// isMountpoint reports whether path sits on a different device than its
// parent, the same check os.path.ismount performs.
func isMountpoint(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return false
	}
	parent, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return false
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	pst, ok := parent.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return st.Dev != pst.Dev
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
