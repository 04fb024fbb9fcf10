// Package selection turns annotation rows into a bounded list of
// fetch targets.
//
// The steps are pure functions over already-loaded tables:
//
//	ids := selection.Candidates(rows, codes, excludeOccluded)
//	targets, err := selection.BuildTargets(ids, baseURL, existing)
//	targets = selection.Sample(targets, max, rng)
//
// Candidates deduplicates image IDs across rows, BuildTargets skips
// files already present in the output location, and Sample caps the
// batch by uniform random sampling without replacement.
package selection
