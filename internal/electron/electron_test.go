package electron

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zkat/electron-collider/internal/version"
)

// noManifestExecutable anchors the manifest walk-up in an empty temporary
// directory so the fast path reliably misses.
func noManifestExecutable(t *testing.T) func() (string, error) {
	t.Helper()
	dir := t.TempDir()
	return func() (string, error) { return filepath.Join(dir, "collider"), nil }
}

func TestEnsureDownloadsAndCaches(t *testing.T) {
	archive := makeZip(t, map[string]string{"electron": "#!/bin/sh\nexit 0\n"})
	downloads := serveZip(t, archive)

	catalog := &fakeCatalog{
		tags: []string{"v2.5.0"},
		assets: map[string][]Asset{
			"v2.5.0": {
				{Name: "electron-v2.5.0-darwin-arm64.zip", BrowserDownloadURL: downloads.URL + "/darwin"},
				{Name: "electron-v2.5.0-linux-x64.zip", BrowserDownloadURL: downloads.URL + "/linux"},
			},
		},
	}
	api := httptest.NewServer(catalog.handler(t))
	defer api.Close()

	cacheRoot := t.TempDir()
	var out bytes.Buffer
	e, err := NewOpts().
		Host("linux", "amd64").
		CacheRoot(cacheRoot).
		Output(&out).
		Executable(noManifestExecutable(t)).
		Client(testClient(api, "")).
		Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	wantExe := filepath.Join(cacheRoot, "v2.5.0-linux-x64", "electron")
	if e.Exe() != wantExe {
		t.Fatalf("exe = %s, want %s", e.Exe(), wantExe)
	}
	if e.Version().String() != "2.5.0" || e.OS() != "linux" || e.Arch() != "x64" {
		t.Fatalf("unexpected handle: %s %s %s", e.Version(), e.OS(), e.Arch())
	}
	if _, err := os.Stat(wantExe); err != nil {
		t.Fatalf("installed exe missing: %v", err)
	}
	if !strings.Contains(out.String(), "Selected electron@2.5.0 (v2.5.0-linux-x64)") {
		t.Fatalf("missing selection line in output: %q", out.String())
	}
	if !strings.Contains(out.String(), "Downloading electron-v2.5.0-linux-x64.zip...") {
		t.Fatalf("missing download line in output: %q", out.String())
	}
}

func TestEnsureSecondCallHitsCache(t *testing.T) {
	archive := makeZip(t, map[string]string{"electron": "bin"})
	downloads := serveZip(t, archive)
	catalog := &fakeCatalog{
		tags: []string{"v2.5.0"},
		assets: map[string][]Asset{
			"v2.5.0": {{Name: "electron-v2.5.0-linux-x64.zip", BrowserDownloadURL: downloads.URL}},
		},
	}
	api := httptest.NewServer(catalog.handler(t))
	defer api.Close()

	cacheRoot := t.TempDir()
	exe := noManifestExecutable(t)
	opts := func() *Opts {
		return NewOpts().
			Host("linux", "amd64").
			CacheRoot(cacheRoot).
			Output(io.Discard).
			Executable(exe).
			Client(testClient(api, ""))
	}

	if _, err := opts().Ensure(context.Background()); err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	var out bytes.Buffer
	if _, err := opts().Output(&out).Ensure(context.Background()); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if strings.Contains(out.String(), "Downloading") {
		t.Fatalf("second Ensure re-downloaded: %q", out.String())
	}
}

func TestEnsureFastPathAvoidsCatalog(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected catalog request: %s", r.URL.Path)
		http.NotFound(w, r)
	}))
	defer api.Close()

	exeDir := t.TempDir()
	writeManifest(t, exeDir, `{"name": "collider", "version": "2.5.0"}`)

	cacheRoot := t.TempDir()
	entry := filepath.Join(cacheRoot, "v2.5.0-linux-x64")
	if err := os.MkdirAll(entry, 0o755); err != nil {
		t.Fatalf("mkdir entry: %v", err)
	}
	if err := os.WriteFile(filepath.Join(entry, "electron"), []byte("bin"), 0o755); err != nil {
		t.Fatalf("write cached exe: %v", err)
	}

	e, err := NewOpts().
		Host("linux", "amd64").
		Range(version.MustRange("^2.0.0")).
		CacheRoot(cacheRoot).
		Executable(func() (string, error) { return filepath.Join(exeDir, "collider"), nil }).
		Client(testClient(api, "")).
		Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if e.Exe() != filepath.Join(entry, "electron") {
		t.Fatalf("unexpected exe: %s", e.Exe())
	}
	if e.Version().String() != "2.5.0" {
		t.Fatalf("unexpected version: %s", e.Version())
	}
}

func TestEnsureHonorsCacheDirEnv(t *testing.T) {
	exeDir := t.TempDir()
	writeManifest(t, exeDir, `{"name": "collider", "version": "2.5.0"}`)

	cacheRoot := t.TempDir()
	entry := filepath.Join(cacheRoot, "v2.5.0-linux-x64")
	if err := os.MkdirAll(entry, 0o755); err != nil {
		t.Fatalf("mkdir entry: %v", err)
	}
	if err := os.WriteFile(filepath.Join(entry, "electron"), []byte("bin"), 0o755); err != nil {
		t.Fatalf("write cached exe: %v", err)
	}

	e, err := NewOpts().
		Host("linux", "amd64").
		Executable(func() (string, error) { return filepath.Join(exeDir, "collider"), nil }).
		Getenv(func(key string) string {
			if key == EnvCacheDir {
				return cacheRoot
			}
			return ""
		}).
		Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if e.Exe() != filepath.Join(entry, "electron") {
		t.Fatalf("env cache root ignored, exe = %s", e.Exe())
	}
}

func TestEnsureForceBypassesFastPath(t *testing.T) {
	archive := makeZip(t, map[string]string{"electron": "fresh"})
	downloads := serveZip(t, archive)
	catalog := &fakeCatalog{
		tags: []string{"v2.5.0"},
		assets: map[string][]Asset{
			"v2.5.0": {{Name: "electron-v2.5.0-linux-x64.zip", BrowserDownloadURL: downloads.URL}},
		},
	}
	api := httptest.NewServer(catalog.handler(t))
	defer api.Close()

	exeDir := t.TempDir()
	writeManifest(t, exeDir, `{"name": "collider", "version": "2.5.0"}`)

	cacheRoot := t.TempDir()
	entry := filepath.Join(cacheRoot, "v2.5.0-linux-x64")
	if err := os.MkdirAll(entry, 0o755); err != nil {
		t.Fatalf("mkdir entry: %v", err)
	}
	if err := os.WriteFile(filepath.Join(entry, "electron"), []byte("stale"), 0o755); err != nil {
		t.Fatalf("write cached exe: %v", err)
	}

	e, err := NewOpts().
		Host("linux", "amd64").
		Force(true).
		CacheRoot(cacheRoot).
		Executable(func() (string, error) { return filepath.Join(exeDir, "collider"), nil }).
		Client(testClient(api, "")).
		Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	data, err := os.ReadFile(e.Exe())
	if err != nil {
		t.Fatalf("read exe: %v", err)
	}
	if string(data) != "fresh" {
		t.Fatalf("force did not refresh the entry: %q", data)
	}
}

func TestEnsureMissingFiles(t *testing.T) {
	catalog := &fakeCatalog{
		tags: []string{"v2.5.0"},
		assets: map[string][]Asset{
			"v2.5.0": {{Name: "electron-v2.5.0-win32-ia32.zip", BrowserDownloadURL: "https://example.invalid/a.zip"}},
		},
	}
	api := httptest.NewServer(catalog.handler(t))
	defer api.Close()

	_, err := NewOpts().
		Host("linux", "amd64").
		CacheRoot(t.TempDir()).
		Executable(noManifestExecutable(t)).
		Client(testClient(api, "")).
		Ensure(context.Background())
	var missing *MissingFilesError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFilesError, got %v", err)
	}
	if missing.Target != "electron-v2.5.0-linux-x64.zip" {
		t.Fatalf("unexpected target: %s", missing.Target)
	}
	if !strings.Contains(err.Error(), "could not find matching electron files") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestEnsureUnsupportedHost(t *testing.T) {
	_, err := NewOpts().Host("plan9", "amd64").Ensure(context.Background())
	var platformErr *UnsupportedPlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected UnsupportedPlatformError, got %v", err)
	}

	_, err = NewOpts().Host("linux", "mips").Ensure(context.Background())
	var archErr *UnsupportedArchError
	if !errors.As(err, &archErr) {
		t.Fatalf("expected UnsupportedArchError, got %v", err)
	}
}

func TestTargetTriple(t *testing.T) {
	v, err := version.Parse("v13.2.1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := targetTriple(v, "win32", "ia32"); got != "v13.2.1-win32-ia32" {
		t.Fatalf("targetTriple = %s", got)
	}
}

func TestPickElectronZip(t *testing.T) {
	v, err := version.Parse("v2.5.0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	release := &Release{Assets: []Asset{
		{Name: "electron-v2.5.0-linux-x64.zip.sha256", BrowserDownloadURL: "https://example.invalid/sum"},
		{Name: "electron-v2.5.0-linux-x64.zip", BrowserDownloadURL: "https://example.invalid/zip"},
	}}
	url, err := pickElectronZip(v, release, "v2.5.0-linux-x64")
	if err != nil {
		t.Fatalf("pickElectronZip: %v", err)
	}
	if url != "https://example.invalid/zip" {
		t.Fatalf("unexpected url: %s", url)
	}

	if _, err := pickElectronZip(v, release, "v2.5.0-darwin-arm64"); err == nil {
		t.Fatalf("expected MissingFilesError")
	}
}

func TestCopyFiles(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "resources"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "electron"), []byte("bin"), 0o755); err != nil {
		t.Fatalf("write exe: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "resources", "app.asar"), []byte("app"), 0o644); err != nil {
		t.Fatalf("write resource: %v", err)
	}

	v, err := version.Parse("v2.5.0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e := &Electron{exe: filepath.Join(src, "electron"), version: v, os: "linux", arch: "x64"}

	dst := filepath.Join(t.TempDir(), "copy")
	copied, err := e.CopyFiles(dst)
	if err != nil {
		t.Fatalf("CopyFiles: %v", err)
	}
	if copied.Exe() != filepath.Join(dst, "electron") {
		t.Fatalf("unexpected copied exe: %s", copied.Exe())
	}
	if copied.Version().String() != "2.5.0" {
		t.Fatalf("copy lost version: %s", copied.Version())
	}

	info, err := os.Stat(copied.Exe())
	if err != nil {
		t.Fatalf("stat copied exe: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("copied exe lost mode: %v", info.Mode())
	}
	data, err := os.ReadFile(filepath.Join(dst, "resources", "app.asar"))
	if err != nil {
		t.Fatalf("read copied resource: %v", err)
	}
	if string(data) != "app" {
		t.Fatalf("unexpected copied content: %q", data)
	}
}

func TestEnsureManifestJSONErrorSurfaces(t *testing.T) {
	exeDir := t.TempDir()
	writeManifest(t, exeDir, `{"name": "collider"`)

	_, err := NewOpts().
		Host("linux", "amd64").
		CacheRoot(t.TempDir()).
		Executable(func() (string, error) { return filepath.Join(exeDir, "collider"), nil }).
		Ensure(context.Background())
	var jsonErr *JSONError
	if !errors.As(err, &jsonErr) {
		t.Fatalf("expected JSONError, got %v", err)
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected the wrapped syntax error, got %v", err)
	}
}
