package lockfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const metadataKey = "__metadata"

// berryEntry mirrors the fields of a berry lockfile entry this package uses.
type berryEntry struct {
	Version              string            `yaml:"version"`
	Resolution           string            `yaml:"resolution"`
	Dependencies         map[string]string `yaml:"dependencies"`
	OptionalDependencies map[string]string `yaml:"optionalDependencies"`
}

type berryMetadata struct {
	Version  int    `yaml:"version"`
	CacheKey string `yaml:"cacheKey"`
}

// parseBerry walks the top-level mapping node by node so entries keep their
// document order; decoding into a Go map would lose it.
func parseBerry(data []byte) (*Lockfile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLockfile, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrInvalidLockfile)
	}

	root := doc.Content[0]
	lf := &Lockfile{Format: FormatBerry}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Value == metadataKey {
			var md berryMetadata
			if err := value.Decode(&md); err != nil {
				return nil, fmt.Errorf("%w: line %d: __metadata: %w", ErrInvalidLockfile, key.Line, err)
			}
			lf.MetadataVersion = md.Version
			continue
		}

		var be berryEntry
		if err := value.Decode(&be); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, key.Line, err)
		}

		descriptors, err := parseDescriptorList(key.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, key.Line, err)
		}

		deps, err := dependencyList(be.Dependencies, be.OptionalDependencies)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, key.Line, err)
		}

		lf.Entries = append(lf.Entries, Entry{
			Name:         descriptors[0].Name,
			Version:      be.Version,
			Resolution:   be.Resolution,
			Descriptors:  descriptors,
			Dependencies: deps,
		})
	}

	if lf.MetadataVersion == 0 {
		return nil, fmt.Errorf("%w: missing __metadata.version", ErrInvalidLockfile)
	}

	return lf, nil
}
