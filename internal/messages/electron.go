package messages

// Acquisition engine messages: catalog lookups, cache installs, manifest
// discovery. The *Fmt constants are fmt format strings; filesystem wrappers
// carry an operation description because raw I/O errors are not
// self-explanatory where they surface.
const (
	ElectronCreateRequestErrFmt  = "create github request: %w"
	ElectronRequestFailedFmt     = "github request for %s failed: %w"
	ElectronDecodeResponseErrFmt = "decode github response from %s: %w"
	ElectronReadErrorBodyFmt     = "read github error body from %s: %w"

	ElectronRateLimitHint = "Consider passing in a GitHub API token using `--github-token`, or using a different one."

	ElectronCreateCacheDirFmt    = "create cache directory %s: %w"
	ElectronCreateScratchDirFmt  = "create scratch directory %s: %w"
	ElectronCheckCacheEntryFmt   = "check cache entry %s: %w"
	ElectronCreateTempFileFmt    = "create temporary download file: %w"
	ElectronDownloadFailedFmt    = "download %s: %w"
	ElectronDownloadStatusFmt    = "download %s: unexpected status %s"
	ElectronWriteDownloadFmt     = "write downloaded archive %s: %w"
	ElectronSyncDownloadFmt      = "sync downloaded archive %s: %w"
	ElectronCloseDownloadFmt     = "close downloaded archive %s: %w"
	ElectronExtractTempDirFmt    = "create extraction directory next to %s: %w"
	ElectronRemoveStaleEntryFmt  = "remove stale cache entry %s: %w"
	ElectronCommitCacheEntryFmt  = "move extracted files into cache entry %s: %w"
	ElectronOpenArchiveFmt       = "open archive %s: %w"
	ElectronBadArchiveEntryFmt   = "archive entry %q escapes the extraction root"
	ElectronExtractEntryFmt      = "extract archive entry %s: %w"
	ElectronOpenLockFmt          = "open cache lock %s: %w"
	ElectronLockFmt              = "lock cache entry %s: %w"
	ElectronLockTimeoutFmt       = "timed out waiting %s for the cache entry lock"
	ElectronResolveUserDirsFmt   = "resolve the collider cache directory: %w"
	ElectronCurrentExeFmt        = "locate the currently-executing collider binary: %w"
	ElectronReadManifestFmt      = "read %s: %w"
	ElectronCopyFilesDirFmt      = "create directories to copy electron files into: %w"
	ElectronCopyFilesFmt         = "copy electron files from %s to %s: %w"

	ElectronSelectedFmt    = "Selected electron@%s (%s)\n"
	ElectronDownloadingFmt = "Downloading %s...\n"
	ElectronDownloadedFmt  = "Cached %s\n"
)
