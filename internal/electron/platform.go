package electron

// checkPlatform maps a Go OS/architecture pair onto the platform and arch
// vocabulary used by Electron release asset names. Anything outside the
// enumerated set is a hard failure, never a silent fallback.
func checkPlatform(goos string, goarch string) (string, string, error) {
	var platform string
	switch goos {
	case "windows":
		platform = "win32"
	case "darwin":
		platform = "darwin"
	case "linux":
		platform = "linux"
	default:
		return "", "", &UnsupportedPlatformError{OS: goos}
	}

	var arch string
	switch goarch {
	case "386":
		arch = "ia32"
	case "amd64":
		arch = "x64"
	case "arm64":
		arch = "arm64"
	default:
		return "", "", &UnsupportedArchError{Arch: goarch}
	}

	return platform, arch, nil
}

// exeName returns the executable path inside an extracted release, relative
// to the cache entry root. On darwin the binary is nested in the app bundle.
func exeName(goos string) string {
	switch goos {
	case "windows":
		return "electron.exe"
	case "darwin":
		return "Electron.app/Contents/MacOS/Electron"
	default:
		return "electron"
	}
}
