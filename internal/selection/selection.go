package selection

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"sort"

	"github.com/Vasyka/open-images-downloader/internal/dataset"
)

// Target is one pending download: the image URL and the file name it
// will be stored under.
type Target struct {
	URL  string
	Name string
}

// Candidates filters the annotation table down to the deduplicated set
// of image IDs whose label matches one of the given codes. When
// excludeOccluded is set, rows flagged as occluded are dropped before
// label matching.
func Candidates(rows []dataset.AnnotationRow, codes map[string]struct{}, excludeOccluded bool) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, row := range rows {
		if excludeOccluded && row.IsOccluded {
			continue
		}
		if _, ok := codes[row.LabelName]; !ok {
			continue
		}
		ids[row.ImageID] = struct{}{}
	}
	return ids
}

// BuildTargets converts image IDs into fetch targets, skipping IDs
// whose file name is already present in existing. The existing set is
// a snapshot taken at pipeline start; a file created concurrently by
// another process may be fetched twice, which is harmless.
//
// Targets are returned sorted by name so that a seeded sampler sees a
// stable input order.
func BuildTargets(ids map[string]struct{}, baseURL string, existing map[string]struct{}) ([]Target, error) {
	targets := make([]Target, 0, len(ids))
	for id := range ids {
		name := id + ".jpg"
		if _, ok := existing[name]; ok {
			continue
		}
		u, err := url.JoinPath(baseURL, name)
		if err != nil {
			return nil, fmt.Errorf("join image URL: %w", err)
		}
		targets = append(targets, Target{URL: u, Name: name})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets, nil
}

// Sample caps targets at max elements via uniform sampling without
// replacement. The full list is returned when max <= 0 or the list
// already fits. A nil rng uses the global generator, so runs are
// non-deterministic unless a seeded rng is supplied.
func Sample(targets []Target, max int, rng *rand.Rand) []Target {
	if max <= 0 || len(targets) <= max {
		return targets
	}

	sampled := make([]Target, len(targets))
	copy(sampled, targets)
	swap := func(i, j int) { sampled[i], sampled[j] = sampled[j], sampled[i] }
	if rng != nil {
		rng.Shuffle(len(sampled), swap)
	} else {
		rand.Shuffle(len(sampled), swap)
	}
	return sampled[:max]
}
