package lockfile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-yarnwhy/label"
)

// parseDescriptorList parses an entry key such as
// `"fsevents@npm:~2.3.2, fsevents@npm:~2.3.3"` into its descriptors.
func parseDescriptorList(key string) ([]label.Descriptor, error) {
	parts := strings.Split(key, ",")
	descriptors := make([]label.Descriptor, 0, len(parts))
	for _, part := range parts {
		part = unquote(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, err := label.ParseDescriptor(part)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("entry key %q has no descriptors", key)
	}
	return descriptors, nil
}

// dependencyList merges name→range maps into descriptors ordered by name.
// A name listed in several maps keeps every distinct range.
func dependencyList(maps ...map[string]string) ([]label.Descriptor, error) {
	var deps []label.Descriptor
	for _, m := range maps {
		for name, rng := range m {
			if err := label.ValidateName(name); err != nil {
				return nil, fmt.Errorf("dependency: %w", err)
			}
			d := label.Descriptor{Name: name, Range: rng}
			if !slices.Contains(deps, d) {
				deps = append(deps, d)
			}
		}
	}
	slices.SortFunc(deps, label.Compare)
	return deps, nil
}
