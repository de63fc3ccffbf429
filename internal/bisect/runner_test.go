package bisect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkat/electron-collider/internal/testutil"
	"github.com/zkat/electron-collider/internal/version"
)

type fakePrompter struct {
	verdicts []bool
	titles   []string
	err      error
}

func (p *fakePrompter) Confirm(title string) (bool, error) {
	p.titles = append(p.titles, title)
	if p.err != nil {
		return false, p.err
	}
	verdict := p.verdicts[0]
	p.verdicts = p.verdicts[1:]
	return verdict, nil
}

func TestRunnerBisect(t *testing.T) {
	candidates := versionList(t, "v1.0.0", "v1.1.0", "v1.2.0", "v1.3.0")
	var ensured []string
	var out bytes.Buffer

	runner := &Runner{
		Ensure: func(_ context.Context, v *version.Version) (string, error) {
			ensured = append(ensured, v.String())
			return "/fake/electron-" + v.String(), nil
		},
		Run: func(_ context.Context, exe string, args []string) (int, error) {
			require.Equal(t, []string{"app.js"}, args)
			// Everything from 1.2.0 on exhibits the breakage.
			v, err := version.Parse(filepath.Base(exe)[len("electron-"):])
			require.NoError(t, err)
			if v.Minor() >= 2 {
				return 1, nil
			}
			return 0, nil
		},
		Out: &out,
	}

	lo, hi, err := runner.Bisect(context.Background(), candidates, []string{"app.js"})
	require.NoError(t, err)
	require.Equal(t, "1.1.0", lo.String())
	require.Equal(t, "1.2.0", hi.String())
	require.Equal(t, []string{"1.1.0", "1.2.0"}, ensured)

	require.Contains(t, out.String(), "Testing electron@1.1.0 (4 candidates remaining)")
	require.Contains(t, out.String(), "electron@1.1.0: PASS")
	require.Contains(t, out.String(), "electron@1.2.0: FAIL")
}

func TestRunnerBisectInteractiveOverridesExitCode(t *testing.T) {
	candidates := versionList(t, "v1.0.0", "v1.1.0", "v1.2.0", "v1.3.0")
	// The app exits cleanly everywhere; the human says every run is broken.
	prompter := &fakePrompter{verdicts: []bool{false, false, false}}

	runner := &Runner{
		Ensure:      func(_ context.Context, v *version.Version) (string, error) { return "/fake/electron", nil },
		Run:         func(_ context.Context, _ string, _ []string) (int, error) { return 0, nil },
		Prompter:    prompter,
		Interactive: true,
	}

	lo, hi, err := runner.Bisect(context.Background(), candidates, nil)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", lo.String())
	require.Equal(t, "1.1.0", hi.String())
	require.NotEmpty(t, prompter.titles)
	require.Contains(t, prompter.titles[0], "electron@1.1.0")
}

func TestRunnerBisectRequiresCallbacks(t *testing.T) {
	candidates := versionList(t, "v1.0.0", "v1.1.0")
	run := func(_ context.Context, _ string, _ []string) (int, error) { return 0, nil }
	ensure := func(_ context.Context, _ *version.Version) (string, error) { return "", nil }

	_, _, err := (&Runner{Run: run}).Bisect(context.Background(), candidates, nil)
	require.EqualError(t, err, "bisect runner requires an ensure function")

	_, _, err = (&Runner{Ensure: ensure}).Bisect(context.Background(), candidates, nil)
	require.EqualError(t, err, "bisect runner requires a run function")

	_, _, err = (&Runner{Ensure: ensure, Run: run, Interactive: true}).Bisect(context.Background(), candidates, nil)
	require.EqualError(t, err, "interactive bisect requires a prompter")
}

func TestRunnerBisectEnsureErrorPropagates(t *testing.T) {
	candidates := versionList(t, "v1.0.0", "v1.1.0")
	boom := errors.New("download failed")
	runner := &Runner{
		Ensure: func(_ context.Context, _ *version.Version) (string, error) { return "", boom },
		Run:    func(_ context.Context, _ string, _ []string) (int, error) { return 0, nil },
	}
	_, _, err := runner.Bisect(context.Background(), candidates, nil)
	require.ErrorIs(t, err, boom)
}

func TestRunnerBisectLaunchErrorWrapped(t *testing.T) {
	candidates := versionList(t, "v1.0.0", "v1.1.0")
	runner := &Runner{
		Ensure: func(_ context.Context, _ *version.Version) (string, error) { return "/fake/electron", nil },
		Run: func(_ context.Context, _ string, _ []string) (int, error) {
			return 0, fmt.Errorf("no such file")
		},
	}
	_, _, err := runner.Bisect(context.Background(), candidates, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "launch /fake/electron")
}

func TestRunnerBisectPrompterErrorPropagates(t *testing.T) {
	candidates := versionList(t, "v1.0.0", "v1.1.0")
	boom := errors.New("prompt aborted")
	runner := &Runner{
		Ensure:      func(_ context.Context, _ *version.Version) (string, error) { return "/fake/electron", nil },
		Run:         func(_ context.Context, _ string, _ []string) (int, error) { return 0, nil },
		Prompter:    &fakePrompter{err: boom},
		Interactive: true,
	}
	_, _, err := runner.Bisect(context.Background(), candidates, nil)
	require.ErrorIs(t, err, boom)
}

func TestRunApp(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "electron-ok")
	testutil.WriteStubWithExit(t, dir, "electron-broken", 7)

	code, err := RunApp(context.Background(), filepath.Join(dir, "electron-ok"), nil)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	code, err = RunApp(context.Background(), filepath.Join(dir, "electron-broken"), nil)
	require.NoError(t, err)
	require.Equal(t, 7, code)

	_, err = RunApp(context.Background(), filepath.Join(dir, "does-not-exist"), nil)
	require.Error(t, err)
}
