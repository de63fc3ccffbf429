// Package bisect binary-searches an ordered list of Electron releases for
// the boundary where an application's behavior changes.
package bisect

import (
	"fmt"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// Outcome is the verdict for one candidate version.
type Outcome int

const (
	// Fail marks a candidate exhibiting the breakage.
	Fail Outcome = iota
	// Pass marks a candidate behaving correctly.
	Pass
)

// Bisector walks an index range over a version-sorted candidate list,
// halving the untested span on each reported outcome. Candidates must be
// ordered oldest to newest.
type Bisector struct {
	versions  []*version.Version
	minRev    int
	maxRev    int
	pivot     int
	converged bool
}

// NewBisector starts a search over candidates. At least two candidates are
// required for a boundary to exist between them.
func NewBisector(candidates []*version.Version) (*Bisector, error) {
	if len(candidates) < 2 {
		return nil, fmt.Errorf(messages.BisectEmptyCandidates)
	}
	maxRev := len(candidates) - 1
	return &Bisector{
		versions: candidates,
		maxRev:   maxRev,
		pivot:    maxRev / 2,
	}, nil
}

// Pivot returns the candidate to test next.
func (b *Bisector) Pivot() *version.Version {
	return b.versions[b.pivot]
}

// PivotIndex returns the index of the current pivot.
func (b *Bisector) PivotIndex() int {
	return b.pivot
}

// Remaining returns the number of candidates still inside the bracket.
func (b *Bisector) Remaining() int {
	return b.maxRev - b.minRev + 1
}

// LastIteration reports that the bracket can shrink no further: the current
// pivot is still tested, then the search terminates regardless of outcome.
func (b *Bisector) LastIteration() bool {
	return b.maxRev-b.minRev <= 1
}

// Converged reports whether the search has terminated.
func (b *Bisector) Converged() bool {
	return b.converged
}

// Report records the outcome for the current pivot and advances the search.
// It returns true when no further progress is possible. A passing pivot
// moves the lower bound up; a failing pivot moves the upper bound down. The
// next pivot is the truncated midpoint of the surviving half; when that
// midpoint cannot move, the search converges on the spot.
func (b *Bisector) Report(outcome Outcome) bool {
	if b.converged {
		return true
	}
	switch outcome {
	case Pass:
		next := b.pivot + (b.maxRev-b.pivot)/2
		if next == b.maxRev || next == b.pivot {
			b.minRev = b.pivot
			b.converged = true
			return true
		}
		b.minRev = b.pivot
		b.pivot = next
	case Fail:
		next := b.pivot - (b.pivot-b.minRev)/2
		if next == b.minRev || next == b.pivot {
			b.maxRev = b.pivot
			b.converged = true
			return true
		}
		b.maxRev = b.pivot
		b.pivot = next
	}
	return false
}

// Bracket returns the two boundary versions straddling the behavioral
// change once the search is done.
func (b *Bisector) Bracket() (*version.Version, *version.Version) {
	return b.versions[b.minRev], b.versions[b.maxRev]
}
