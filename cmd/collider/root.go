package main

import (
	"github.com/spf13/cobra"

	"github.com/zkat/electron-collider/internal/config"
	"github.com/zkat/electron-collider/internal/messages"
)

// rootFlags are the global flags shared by every subcommand.
type rootFlags struct {
	configPath  string
	quiet       bool
	githubToken string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, messages.RootFlagQuiet)
	cmd.PersistentFlags().StringVar(&flags.githubToken, "github-token", "", messages.RootFlagGitHubToken)

	cmd.AddCommand(newStartCmd(flags))
	cmd.AddCommand(newBisectCmd(flags))
	return cmd
}

// loadConfig reads the configured file, or the per-user default when no
// --config was given.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		return config.Load(f.configPath)
	}
	return config.LoadDefault()
}

// token resolves the GitHub token, flag first, then config.
func (f *rootFlags) token(cfg *config.Config) string {
	if f.githubToken != "" {
		return f.githubToken
	}
	return cfg.GitHubToken
}
