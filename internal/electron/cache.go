package electron

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zkat/electron-collider/internal/messages"
)

// EnvCacheDir overrides the artifact cache root when set.
const EnvCacheDir = "COLLIDER_CACHE_DIR"

var (
	osStat         = os.Stat
	osRename       = os.Rename
	osCreateTemp   = os.CreateTemp
	downloadClient = &http.Client{Timeout: 10 * time.Minute}
)

// cache maps (version, target) triples to extracted artifact directories.
// Entries live directly under dataDir keyed by their triple string; archives
// are staged in a separate scratch directory and never persist.
type cache struct {
	dataDir    string
	scratchDir string
	out        io.Writer
}

func newCache(root string, out io.Writer) *cache {
	if out == nil {
		out = io.Discard
	}
	return &cache{
		dataDir:    root,
		scratchDir: filepath.Join(root, "downloads"),
		out:        out,
	}
}

// defaultCacheRoot resolves the per-user cache root, honoring EnvCacheDir.
func defaultCacheRoot(getenv func(string) string) (string, error) {
	if dir := strings.TrimSpace(getenv(EnvCacheDir)); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf(messages.ElectronResolveUserDirsFmt, err)
	}
	return filepath.Join(base, "collider"), nil
}

func (c *cache) entryPath(triple string) string {
	return filepath.Join(c.dataDir, triple)
}

// lookup reports a hit only when the expected executable exists inside the
// entry. Checking the executable rather than the bare directory means an
// interrupted previous install can never masquerade as a good entry.
func (c *cache) lookup(triple string, exeRel string) (string, bool, error) {
	exe := filepath.Join(c.entryPath(triple), filepath.FromSlash(exeRel))
	if _, err := osStat(exe); err == nil {
		return exe, true, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf(messages.ElectronCheckCacheEntryFmt, exe, err)
	}
	return "", false, nil
}

// install downloads assetURL, extracts it, and commits it as the entry for
// triple. Extraction happens in a staging directory that is renamed into
// place only after it fully succeeds, so a failure part way through leaves
// no half-populated entry behind. The downloaded archive is deleted
// unconditionally. Installs for the same entry serialize on a lock file.
func (c *cache) install(ctx context.Context, triple string, assetURL string, exeRel string, force bool) (string, error) {
	entry := c.entryPath(triple)
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return "", fmt.Errorf(messages.ElectronCreateCacheDirFmt, c.dataDir, err)
	}
	if err := os.MkdirAll(c.scratchDir, 0o755); err != nil {
		return "", fmt.Errorf(messages.ElectronCreateScratchDirFmt, c.scratchDir, err)
	}

	if err := withFileLock(entry+".lock", func() error {
		if !force {
			if _, hit, err := c.lookup(triple, exeRel); err != nil {
				return err
			} else if hit {
				return nil
			}
		}

		assetName := "electron-" + triple + ".zip"
		_, _ = fmt.Fprintf(c.out, messages.ElectronDownloadingFmt, assetName)
		archivePath, err := c.download(ctx, assetName, assetURL)
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(archivePath) }()

		staging, err := os.MkdirTemp(c.dataDir, triple+".extract-*")
		if err != nil {
			return fmt.Errorf(messages.ElectronExtractTempDirFmt, entry, err)
		}
		defer func() { _ = os.RemoveAll(staging) }()

		if err := extractZip(archivePath, staging); err != nil {
			return err
		}

		if err := os.RemoveAll(entry); err != nil {
			return fmt.Errorf(messages.ElectronRemoveStaleEntryFmt, entry, err)
		}
		if err := osRename(staging, entry); err != nil {
			return fmt.Errorf(messages.ElectronCommitCacheEntryFmt, entry, err)
		}
		_, _ = fmt.Fprintf(c.out, messages.ElectronDownloadedFmt, triple)
		return nil
	}); err != nil {
		return "", err
	}

	return filepath.Join(entry, filepath.FromSlash(exeRel)), nil
}

// download streams assetURL into a temporary file in the scratch directory,
// writing in chunks so memory stays bounded regardless of artifact size.
func (c *cache) download(ctx context.Context, assetName string, assetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", fmt.Errorf(messages.ElectronCreateRequestErrFmt, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := downloadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.ElectronDownloadFailedFmt, assetURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.ElectronDownloadStatusFmt, assetURL, resp.Status)
	}

	tmp, err := osCreateTemp(c.scratchDir, assetName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf(messages.ElectronCreateTempFileFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return "", fmt.Errorf(messages.ElectronWriteDownloadFmt, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf(messages.ElectronSyncDownloadFmt, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf(messages.ElectronCloseDownloadFmt, tmpName, err)
	}
	committed = true
	return tmpName, nil
}
