package yarnwhy

import (
	"github.com/Masterminds/semver/v3"

	"github.com/albertocavalcante/go-yarnwhy/lockfile"
)

// FilterVersions drops the entries named name whose resolved version does not
// satisfy c. Versions that are not valid semver ("0.0.0-use.local" is, a git
// commit is not) never satisfy a filter. Entries of other packages are kept.
// It returns the kept entries and the number removed; the input is not modified.
func FilterVersions(entries []lockfile.Entry, name string, c *semver.Constraints) ([]lockfile.Entry, int) {
	if c == nil {
		return entries, 0
	}

	kept := make([]lockfile.Entry, 0, len(entries))
	removed := 0
	for _, e := range entries {
		if e.Name == name && !satisfies(c, e.Version) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}

func satisfies(c *semver.Constraints, version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return c.Check(v)
}
