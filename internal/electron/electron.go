// Package electron resolves an Electron version range against the GitHub
// release catalog and materializes the matching binary distribution in a
// local content cache.
package electron

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// Electron is a handle to an acquired artifact: the executable path plus the
// resolved version and target. Immutable; owned by the caller for the
// lifetime of the launched process.
type Electron struct {
	exe     string
	version *version.Version
	os      string
	arch    string
}

// Exe returns the path to the Electron executable.
func (e *Electron) Exe() string {
	return e.exe
}

// Version returns the resolved Electron version.
func (e *Electron) Version() *version.Version {
	return e.version
}

// OS returns the release platform string (win32, darwin, or linux).
func (e *Electron) OS() string {
	return e.os
}

// Arch returns the release architecture string (ia32, x64, or arm64).
func (e *Electron) Arch() string {
	return e.arch
}

// CopyFiles copies the artifact tree next to the executable into dst,
// overwriting existing files, and returns a handle rebound to the copy.
func (e *Electron) CopyFiles(dst string) (*Electron, error) {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf(messages.ElectronCopyFilesDirFmt, err)
	}
	src := filepath.Dir(e.exe)
	if err := copyTree(src, dst); err != nil {
		return nil, fmt.Errorf(messages.ElectronCopyFilesFmt, src, dst, err)
	}
	return &Electron{
		exe:     filepath.Join(dst, filepath.Base(e.exe)),
		version: e.version,
		os:      e.os,
		arch:    e.arch,
	}, nil
}

// Opts configures artifact acquisition. The zero value of each knob is the
// default: unconstrained range, no force, prereleases excluded, anonymous
// GitHub access, per-user cache root, host platform.
type Opts struct {
	force             bool
	rng               version.Range
	includePrerelease bool
	githubToken       string
	cacheRoot         string
	out               io.Writer

	goos       string
	goarch     string
	executable func() (string, error)
	getenv     func(string) string
	client     *Client
}

// NewOpts returns acquisition options bound to the host environment.
func NewOpts() *Opts {
	return &Opts{
		out:        os.Stderr,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		executable: os.Executable,
		getenv:     os.Getenv,
	}
}

// Force requests a fresh download even when the cache already has the entry.
func (o *Opts) Force(force bool) *Opts {
	o.force = force
	return o
}

// Range constrains which Electron versions are acceptable.
func (o *Opts) Range(rng version.Range) *Opts {
	o.rng = rng
	return o
}

// IncludePrerelease admits prerelease versions into range matching.
func (o *Opts) IncludePrerelease(include bool) *Opts {
	o.includePrerelease = include
	return o
}

// GitHubToken authenticates catalog requests, raising the API rate limit.
func (o *Opts) GitHubToken(token string) *Opts {
	o.githubToken = token
	return o
}

// CacheRoot overrides the artifact cache root directory.
func (o *Opts) CacheRoot(dir string) *Opts {
	if dir != "" {
		o.cacheRoot = dir
	}
	return o
}

// Output directs progress lines; defaults to stderr.
func (o *Opts) Output(w io.Writer) *Opts {
	if w != nil {
		o.out = w
	}
	return o
}

// Host overrides the host OS/architecture identifiers. The ambient values
// are injected here rather than read ad hoc so the engine is testable with
// fake environments.
func (o *Opts) Host(goos string, goarch string) *Opts {
	o.goos = goos
	o.goarch = goarch
	return o
}

// Executable overrides discovery of the running binary's path, the anchor
// for manifest walk-up.
func (o *Opts) Executable(fn func() (string, error)) *Opts {
	if fn != nil {
		o.executable = fn
	}
	return o
}

// Getenv overrides environment lookup.
func (o *Opts) Getenv(fn func(string) string) *Opts {
	if fn != nil {
		o.getenv = fn
	}
	return o
}

// Client overrides the catalog client.
func (o *Opts) Client(client *Client) *Opts {
	if client != nil {
		o.client = client
	}
	return o
}

// Ensure resolves the configured range against the release catalog and
// guarantees a verified extracted copy of the selected release exists in the
// local cache, returning a handle to it. The operation is synchronous and
// yields no partial results; progress goes to the configured output only.
func (o *Opts) Ensure(ctx context.Context) (*Electron, error) {
	platform, arch, err := checkPlatform(o.goos, o.goarch)
	if err != nil {
		return nil, err
	}
	exeRel := exeName(o.goos)

	cacheRoot := o.cacheRoot
	if cacheRoot == "" {
		cacheRoot, err = defaultCacheRoot(o.getenv)
		if err != nil {
			return nil, err
		}
	}
	store := newCache(cacheRoot, o.out)

	// Fast path: the currently-running collider version, when it satisfies
	// the range and the cache already holds its artifact, avoids all
	// catalog traffic.
	if !o.force {
		v, ok, err := o.currentVersion()
		if err != nil {
			return nil, err
		}
		if ok && o.rng.Satisfies(v, o.includePrerelease) {
			triple := targetTriple(v, platform, arch)
			exe, hit, err := store.lookup(triple, exeRel)
			if err != nil {
				return nil, err
			}
			if hit {
				return &Electron{exe: exe, version: v, os: platform, arch: arch}, nil
			}
		}
	}

	client := o.client
	if client == nil {
		client = NewClient(o.githubToken)
	}
	v, release, err := resolveRelease(ctx, client, o.rng, o.includePrerelease, o.currentVersion)
	if err != nil {
		return nil, err
	}

	triple := targetTriple(v, platform, arch)
	_, _ = fmt.Fprintf(o.out, messages.ElectronSelectedFmt, v, triple)

	assetURL, err := pickElectronZip(v, release, triple)
	if err != nil {
		return nil, err
	}
	exe, err := store.install(ctx, triple, assetURL, exeRel, o.force)
	if err != nil {
		return nil, err
	}
	return &Electron{exe: exe, version: v, os: platform, arch: arch}, nil
}

func (o *Opts) currentVersion() (*version.Version, bool, error) {
	exePath, err := o.executable()
	if err != nil {
		return nil, false, fmt.Errorf(messages.ElectronCurrentExeFmt, err)
	}
	return currentColliderVersion(exePath)
}

// targetTriple builds the cache-entry and asset-name key for one release.
func targetTriple(v *version.Version, platform string, arch string) string {
	return fmt.Sprintf("v%s-%s-%s", v, platform, arch)
}

// pickElectronZip finds the asset named by the release convention
// electron-v{version}-{platform}-{arch}.zip.
func pickElectronZip(v *version.Version, release *Release, triple string) (string, error) {
	name := "electron-" + triple + ".zip"
	for _, asset := range release.Assets {
		if asset.Name == name {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", &MissingFilesError{Version: v, Target: name}
}

// copyTree mirrors the directory tree at src into dst, preserving file
// modes and symlinks.
func copyTree(src string, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)
		switch {
		case info.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return err
			}
			_ = os.Remove(target)
			return os.Symlink(linkTarget, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src string, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
