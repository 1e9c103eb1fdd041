// Package lockfile reads yarn lockfiles into ordered, structured entries.
//
// Two on-disk formats are supported:
//   - classic (yarn v1): the "# yarn lockfile v1" indentation syntax
//   - berry (yarn v2+): YAML with a top-level __metadata block
//
// Both produce the same [Entry] records: the package name, its resolved
// version, every descriptor that resolves to it, and the descriptors it
// depends on. The package never writes lockfiles back.
//
// # Usage
//
//	lf, err := lockfile.ReadFile("yarn.lock")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entries := lockfile.Normalize(lf.Entries)
//
// [Normalize] applies the canonicalisation the graph package relies on:
// resolution protocols are stripped from ranges and patch-protocol duplicates
// are dropped.
package lockfile
