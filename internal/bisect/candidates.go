package bisect

import (
	"context"
	"fmt"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// Wildcard selects the oldest catalog entry as a start bound and the newest
// as an end bound.
const Wildcard = "*"

// TagLister pages through the release catalog's tag names, newest first.
// *electron.Client satisfies it.
type TagLister interface {
	ListTags(ctx context.Context, page int) ([]string, error)
}

// Candidates builds the version-sorted, prerelease-filtered candidate list
// between start and end. The catalog pages newest-first; the full listing is
// reversed to oldest-to-newest order, not independently sorted. Each bound
// is either the wildcard or an exact version that must be present in the
// catalog.
func Candidates(ctx context.Context, client TagLister, start string, end string) ([]*version.Version, error) {
	var all []*version.Version
	for page := 0; ; page++ {
		tags, err := client.ListTags(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(tags) == 0 {
			break
		}
		for _, tag := range tags {
			v, err := version.Parse(tag)
			if err != nil {
				return nil, err
			}
			if v.Prerelease() != "" {
				continue
			}
			all = append(all, v)
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf(messages.BisectEmptyCandidates)
	}
	reverse(all)

	lo, err := boundIndex(all, start, 0)
	if err != nil {
		return nil, err
	}
	hi, err := boundIndex(all, end, len(all)-1)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, fmt.Errorf(messages.BisectBoundsInvertedFmt, all[lo], all[hi])
	}
	candidates := all[lo : hi+1]
	if len(candidates) < 2 {
		return nil, fmt.Errorf(messages.BisectTooFewCandidatesFmt, candidates[0], candidates[len(candidates)-1])
	}
	return candidates, nil
}

// boundIndex resolves one bound expression to an index into the candidate
// list; the wildcard resolves to fallback.
func boundIndex(all []*version.Version, bound string, fallback int) (int, error) {
	if bound == "" || bound == Wildcard {
		return fallback, nil
	}
	v, err := version.Parse(bound)
	if err != nil {
		return 0, err
	}
	for i, candidate := range all {
		if candidate.Equal(v) {
			return i, nil
		}
	}
	return 0, fmt.Errorf(messages.BisectBoundNotInCatalogFmt, v)
}

func reverse(versions []*version.Version) {
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
}
