package messages

// Config messages for colliderrc.toml loading and validation.
const (
	ConfigMissingFileFmt       = "missing config file %s: %w"
	ConfigInvalidConfigFmt     = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt  = "config %s has unrecognized keys: %v."
	ConfigInvalidRangeFmt      = "config %s: electron.using %q is not a valid version range: %w"
	ConfigExpandCacheDirFmt    = "expand cache-dir %q: %w"
	ConfigResolveUserConfigFmt = "resolve the user config directory: %w"
)

// Bisect messages for candidate-list construction and prompting.
const (
	BisectEmptyCandidates        = "no electron versions available to bisect"
	BisectBoundNotInCatalogFmt   = "version %s is not in the electron release catalog"
	BisectBoundsInvertedFmt      = "start version %s is newer than end version %s"
	BisectTooFewCandidatesFmt    = "need at least two candidate versions between %s and %s to bisect"
	BisectRequiresTerminal       = "interactive bisect prompts require an interactive terminal"
	BisectLaunchFmt              = "launch %s: %w"
	BisectEnsureRequired         = "bisect runner requires an ensure function"
	BisectRunRequired            = "bisect runner requires a run function"
	BisectPrompterRequired       = "interactive bisect requires a prompter"
)
