package bisect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// EnsureFunc acquires the artifact for one exact version and returns the
// executable path.
type EnsureFunc func(ctx context.Context, v *version.Version) (string, error)

// RunFunc launches the application against an acquired executable and
// returns the child's exit code.
type RunFunc func(ctx context.Context, exe string, args []string) (int, error)

// Runner drives the bisection: each iteration acquires the pivot's
// artifact, launches the application against it, and reports the outcome to
// the bisector. A non-zero exit status is a failure; in interactive mode a
// human verdict overrides the exit status.
type Runner struct {
	Ensure      EnsureFunc
	Run         RunFunc
	Prompter    Prompter
	Interactive bool
	Out         io.Writer
}

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// Bisect searches candidates for the behavioral boundary, testing each
// pivot by launching args against its artifact. It returns the two boundary
// versions bracketing the change.
func (r *Runner) Bisect(ctx context.Context, candidates []*version.Version, args []string) (*version.Version, *version.Version, error) {
	if r.Ensure == nil {
		return nil, nil, errors.New(messages.BisectEnsureRequired)
	}
	if r.Run == nil {
		return nil, nil, errors.New(messages.BisectRunRequired)
	}
	if r.Interactive && r.Prompter == nil {
		return nil, nil, errors.New(messages.BisectPrompterRequired)
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	b, err := NewBisector(candidates)
	if err != nil {
		return nil, nil, err
	}

	for {
		last := b.LastIteration()
		pivot := b.Pivot()
		_, _ = fmt.Fprintf(out, messages.BisectTestingFmt, pivot, b.Remaining())

		exe, err := r.Ensure(ctx, pivot)
		if err != nil {
			return nil, nil, err
		}
		code, err := r.Run(ctx, exe, args)
		if err != nil {
			return nil, nil, fmt.Errorf(messages.BisectLaunchFmt, exe, err)
		}

		outcome := Pass
		if code != 0 {
			outcome = Fail
		}
		if r.Interactive {
			good, err := r.Prompter.Confirm(fmt.Sprintf(messages.BisectPromptFmt, pivot))
			if err != nil {
				return nil, nil, err
			}
			outcome = Fail
			if good {
				outcome = Pass
			}
		}

		if outcome == Pass {
			_, _ = passColor.Fprintf(out, messages.BisectPassFmt, pivot)
		} else {
			_, _ = failColor.Fprintf(out, messages.BisectFailFmt, pivot)
		}

		done := b.Report(outcome)
		if last || done {
			break
		}
	}

	lo, hi := b.Bracket()
	return lo, hi, nil
}

// RunApp launches exe with args wired to the caller's terminal and maps the
// child's exit status to a code. A non-zero exit is not an error here; it is
// the bisection signal.
func RunApp(ctx context.Context, exe string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, err
	}
	return 0, nil
}
