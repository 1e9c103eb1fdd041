package label

import "strings"

// resolutionProtocols are range prefixes that name the resolver rather than
// the requested range. Dependencies in berry lockfiles carry them
// ("npm:^1.0.0") while the matching descriptor keys often do not.
var resolutionProtocols = []string{"npm:", "workspace:"}

// vcsPrefixes mark ranges whose '#' fragment selects a commit, branch or tag.
// Plain URLs are included: their fragment is a git ref or a tarball checksum,
// never a patch marker.
var vcsPrefixes = []string{
	"git:",
	"git+",
	"git@",
	"github:",
	"gitlab:",
	"bitbucket:",
	"http://",
	"https://",
}

// NormalizeRange strips a known resolution protocol from r.
func NormalizeRange(r string) string {
	for _, p := range resolutionProtocols {
		if rest, ok := strings.CutPrefix(r, p); ok {
			return rest
		}
	}
	return r
}

// Normalize returns d with its range normalized.
func (d Descriptor) Normalize() Descriptor {
	return Descriptor{Name: d.Name, Range: NormalizeRange(d.Range)}
}

// IsVCSRange reports whether r points at a version-control reference.
func IsVCSRange(r string) bool {
	for _, p := range vcsPrefixes {
		if strings.HasPrefix(r, p) {
			return true
		}
	}
	if strings.Contains(r, ".git#") {
		return true
	}
	repo, _, _ := strings.Cut(r, "#")
	return isGitHubShorthand(repo)
}

// isGitHubShorthand matches the "owner/repo" form yarn resolves against
// GitHub.
func isGitHubShorthand(s string) bool {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return false
	}
	if strings.ContainsAny(s, ":@ ") || strings.HasPrefix(owner, ".") || strings.HasPrefix(owner, "~") {
		return false
	}
	return true
}

// IsPatchRange reports whether r belongs to a patch-protocol duplicate
// ("patch:resolve@npm%3A1.22.8#~builtin<compat/resolve>") of an entry that
// is already present unpatched: any range under the patch protocol, or any
// other range carrying a fragment that is not a VCS ref.
func IsPatchRange(r string) bool {
	if strings.HasPrefix(r, "patch:") {
		return true
	}
	return strings.Contains(r, "#") && !IsVCSRange(r)
}
