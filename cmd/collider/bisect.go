package main

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zkat/electron-collider/internal/bisect"
	"github.com/zkat/electron-collider/internal/electron"
	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

func newBisectCmd(root *rootFlags) *cobra.Command {
	var startBound string
	var endBound string
	var interactive bool

	cmd := &cobra.Command{
		Use:   messages.BisectUse,
		Short: messages.BisectShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			token := root.token(cfg)
			cacheDir, err := cfg.ResolvedCacheDir()
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			if root.quiet {
				out = io.Discard
			}

			client := electron.NewClient(token)
			candidates, err := bisect.Candidates(cmd.Context(), client, startBound, endBound)
			if err != nil {
				return err
			}

			runner := &bisect.Runner{
				Ensure:      ensurePivot(token, cacheDir, out),
				Run:         bisect.RunApp,
				Prompter:    bisect.NewHuhPrompter(),
				Interactive: interactive,
				Out:         out,
			}
			lo, hi, err := runner.Bisect(cmd.Context(), candidates, args)
			if err != nil {
				return err
			}

			_, _ = color.New(color.Bold).Fprintf(cmd.OutOrStdout(), messages.BisectConvergedFmt, lo, hi)
			return nil
		},
	}

	cmd.Flags().StringVar(&startBound, "start", bisect.Wildcard, messages.BisectFlagStart)
	cmd.Flags().StringVar(&endBound, "end", bisect.Wildcard, messages.BisectFlagEnd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, messages.BisectFlagInteractive)
	return cmd
}

// ensurePivot acquires the artifact for one exact candidate version.
func ensurePivot(token string, cacheDir string, out io.Writer) bisect.EnsureFunc {
	return func(ctx context.Context, v *version.Version) (string, error) {
		rng, err := version.ParseRange(v.String())
		if err != nil {
			return "", err
		}
		e, err := electron.NewOpts().
			Range(rng).
			GitHubToken(token).
			CacheRoot(cacheDir).
			Output(out).
			Ensure(ctx)
		if err != nil {
			return "", err
		}
		return e.Exe(), nil
	}
}
