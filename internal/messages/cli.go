package messages

// CLI messages for the collider commands.
const (
	// RootUse is the CLI command name.
	RootUse = "collider"
	// RootShort is the short description for the root command.
	RootShort = "Build and manage your Electron application."

	RootFlagConfig      = "File to read configuration values from."
	RootFlagQuiet       = "Disable all output"
	RootFlagGitHubToken = "GitHub API token used for release lookups and downloads"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// StartUse is the start command name.
	StartUse   = "start [app] [args...]"
	StartShort = "Start your application against a managed Electron."

	StartFlagForce             = "Force a fresh Electron download even when a cached copy exists"
	StartFlagUsing             = "Electron version range to run against (e.g. ^13.0.0)"
	StartFlagIncludePrerelease = "Consider prerelease Electron versions when resolving"

	StartLaunchFmt    = "Starting %s with electron@%s...\n"
	StartLaunchErrFmt = "launch %s: %w"

	// BisectUse is the bisect command usage.
	BisectUse   = "bisect [app] [args...]"
	BisectShort = "Bisect the Electron version that caused a breakage."

	BisectFlagStart       = "Oldest Electron version to consider (* for the oldest release)"
	BisectFlagEnd         = "Newest Electron version to consider (* for the newest release)"
	BisectFlagInteractive = "Confirm each run interactively instead of trusting exit codes"

	BisectTestingFmt   = "Testing electron@%s (%d candidates remaining)\n"
	BisectPassFmt      = "electron@%s: PASS\n"
	BisectFailFmt      = "electron@%s: FAIL\n"
	BisectConvergedFmt = "Behavior changed between electron@%s and electron@%s\n"

	BisectPromptFmt = "Did the application behave correctly with electron@%s?"
)
