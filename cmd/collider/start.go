package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/zkat/electron-collider/internal/electron"
	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

var launchAppFunc = launchApp

func newStartCmd(root *rootFlags) *cobra.Command {
	var force bool
	var using string
	var includePrerelease bool

	cmd := &cobra.Command{
		Use:   messages.StartUse,
		Short: messages.StartShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			rangeExpr := using
			if rangeExpr == "" {
				rangeExpr = cfg.Electron.Using
			}
			rng, err := version.ParseRange(rangeExpr)
			if err != nil {
				return err
			}
			cacheDir, err := cfg.ResolvedCacheDir()
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			if root.quiet {
				out = io.Discard
			}

			e, err := electron.NewOpts().
				Force(force).
				Range(rng).
				IncludePrerelease(includePrerelease || cfg.Electron.IncludePrerelease).
				GitHubToken(root.token(cfg)).
				CacheRoot(cacheDir).
				Output(out).
				Ensure(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, messages.StartLaunchFmt, args[0], e.Version())
			code, err := launchAppFunc(cmd.Context(), e.Exe(), args)
			if err != nil {
				return err
			}
			if code != 0 {
				return &electron.ElectronFailedError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, messages.StartFlagForce)
	cmd.Flags().StringVar(&using, "using", "", messages.StartFlagUsing)
	cmd.Flags().BoolVar(&includePrerelease, "include-prerelease", false, messages.StartFlagIncludePrerelease)
	return cmd
}

// launchApp runs the acquired Electron against the user's application with
// the caller's terminal attached.
func launchApp(ctx context.Context, exe string, args []string) (int, error) {
	child := exec.CommandContext(ctx, exe, args...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf(messages.StartLaunchErrFmt, exe, err)
	}
	return 0, nil
}
