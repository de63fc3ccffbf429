package electron

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// RateLimitError indicates the GitHub API rate limit was hit. It is the only
// scan-time error that aborts resolution immediately; continuing to page
// through the catalog would only make the condition worse.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github api rate limit exceeded: %s\n%s", e.Message, messages.ElectronRateLimitHint)
}

// IsRateLimit reports whether err represents a GitHub API rate-limit condition.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// isRateLimitMessage classifies an API error body as a rate-limit condition.
// GitHub gives no structured rate-limit error, so this is a substring
// heuristic; it is isolated here so call sites survive an upgrade to
// structured detection.
func isRateLimitMessage(message string) bool {
	return strings.Contains(message, "rate limit exceeded")
}

// APIError is any GitHub API failure that is not a rate limit or a missing
// release. During catalog scanning these are swallowed per candidate.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github api error (%s): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("github api error (%s)", e.Status)
}

// ReleaseNotFoundError indicates a tag exists but has no published release.
type ReleaseNotFoundError struct {
	Tag string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("no published release for tag %s", e.Tag)
}

// UnsupportedPlatformError is returned for host operating systems outside
// the set Electron publishes binaries for.
type UnsupportedPlatformError struct {
	OS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s. Electron only supports win32, linux, and darwin.", e.OS)
}

// UnsupportedArchError is returned for host CPU architectures outside the
// set Electron publishes binaries for.
type UnsupportedArchError struct {
	Arch string
}

func (e *UnsupportedArchError) Error() string {
	return fmt.Sprintf("unsupported architecture: %s. Electron only supports ia32, x64, and arm64.", e.Arch)
}

// MissingFilesError indicates the resolved release has no asset matching the
// expected target filename. The exact filename is reported to aid manual
// diagnosis against the upstream release page.
type MissingFilesError struct {
	Version *version.Version
	Target  string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("could not find matching electron files for release: %s", e.Target)
}

// NoMatchingVersionError indicates the catalog was exhausted without finding
// a version satisfying the requested range.
type NoMatchingVersionError struct {
	Range version.Range
}

func (e *NoMatchingVersionError) Error() string {
	return fmt.Sprintf("a matching electron version could not be found for `electron@%s`", e.Range)
}

// JSONError carries the byte offset of a JSON syntax failure in a local
// manifest so diagnostics can point at the offending spot.
type JSONError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("failed to parse %s at byte %d: %v", e.Path, e.Offset, e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// ElectronFailedError reports a launched Electron process exiting non-zero.
type ElectronFailedError struct {
	Code int
}

func (e *ElectronFailedError) Error() string {
	return "electron process exited with an error"
}
