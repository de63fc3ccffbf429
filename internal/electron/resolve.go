package electron

import (
	"context"

	"github.com/zkat/electron-collider/internal/version"
)

// resolveRelease selects the concrete (version, release) pair for rng.
//
// Fast path: when a locally-discovered collider version satisfies the range,
// its release is looked up directly with zero catalog pagination. Otherwise
// the catalog is paged newest-first and the first satisfying tag wins; the
// resolver performs no independent sort, so "highest satisfying version"
// holds exactly as far as the catalog's descending page order does.
func resolveRelease(ctx context.Context, client *Client, rng version.Range, includePrerelease bool, current func() (*version.Version, bool, error)) (*version.Version, *Release, error) {
	if v, ok, err := current(); err != nil {
		return nil, nil, err
	} else if ok {
		release, err := releaseForCandidate(ctx, client, v, rng, includePrerelease)
		if err != nil {
			return nil, nil, err
		}
		if release != nil {
			return v, release, nil
		}
	}

	for page := 0; ; page++ {
		tags, err := client.ListTags(ctx, page)
		if err != nil {
			return nil, nil, err
		}
		if len(tags) == 0 {
			break
		}
		for _, tag := range tags {
			// The catalog is trusted to be well-formed: a malformed tag is a
			// hard failure even when it could never satisfy the range.
			v, err := version.Parse(tag)
			if err != nil {
				return nil, nil, err
			}
			release, err := releaseForCandidate(ctx, client, v, rng, includePrerelease)
			if err != nil {
				return nil, nil, err
			}
			if release != nil {
				return v, release, nil
			}
		}
	}

	return nil, nil, &NoMatchingVersionError{Range: rng}
}

// releaseForCandidate fetches the release for a candidate version when it
// satisfies the range. A missing release or a generic API hiccup returns
// (nil, nil) so scanning continues with the next tag; a rate limit aborts
// the whole resolution.
func releaseForCandidate(ctx context.Context, client *Client, v *version.Version, rng version.Range, includePrerelease bool) (*Release, error) {
	if !rng.Satisfies(v, includePrerelease) {
		return nil, nil
	}
	release, err := client.GetReleaseByTag(ctx, "v"+v.String())
	if err != nil {
		if IsRateLimit(err) {
			return nil, err
		}
		return nil, nil
	}
	return release, nil
}
