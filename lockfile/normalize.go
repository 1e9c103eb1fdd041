package lockfile

import "github.com/albertocavalcante/go-yarnwhy/label"

// Normalize returns the entries in the canonical form graph construction
// expects. The input slice and its entries are left untouched.
//
//   - resolution protocols ("npm:", "workspace:") are stripped from every range
//   - descriptors and dependencies with a non-VCS '#' fragment are dropped
//   - entries left without any descriptor are dropped
//   - repeated descriptors within one list are collapsed
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		descriptors := normalizeDescriptors(e.Descriptors)
		if len(descriptors) == 0 {
			continue
		}
		e.Descriptors = descriptors
		e.Dependencies = normalizeDescriptors(e.Dependencies)
		out = append(out, e)
	}
	return out
}

func normalizeDescriptors(in []label.Descriptor) []label.Descriptor {
	out := make([]label.Descriptor, 0, len(in))
	seen := make(map[label.Descriptor]bool, len(in))
	for _, d := range in {
		if label.IsPatchRange(d.Range) {
			continue
		}
		d = d.Normalize()
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
