// Package dependency defines the canonical identity vocabulary shared by
// every lockfile walker and registry client in depscout.
//
// A [Dependency] is one of a closed set of identity kinds (git, github, npm,
// cocoapods, maven). All kinds are plain value structs, so two identities
// are equal exactly when all their fields are equal, and any identity can
// be used as a map key. [Set] builds on that for structural deduplication.
//
// [Canonicalize] folds equivalent surface forms of one logical dependency
// into a single identity; today that means rewriting the git-over-SSH
// GitHub shorthand into a [GitHub] identity.
package dependency

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Dependency is a single pinned dependency identity.
//
// The set of implementations is closed: Git, GitHub, Npm, CocoaPods, and
// Maven. All implementations are comparable value types; no two distinct
// kinds ever compare equal.
type Dependency interface {
	// Kind returns the identity discriminator ("git", "github", "npm",
	// "cocoapods", or "maven"), stable across ecosystems and suitable for
	// serialized interop.
	Kind() string

	// String returns a compact single-line rendering of the identity.
	String() string

	sealed()
}

// Git identifies a dependency pinned to a git repository.
type Git struct {
	URL  string // repository URL, without ssh:// or file:// scheme
	Head string // commit hash, tag, or branch; empty if unspecified
}

// GitHub identifies a GitHub-hosted git dependency in canonical form.
type GitHub struct {
	Owner string
	Name  string
	Head  string // commit hash, tag, or branch; empty if unspecified
}

// Npm identifies an npm package at an exact version (never a range).
type Npm struct {
	Name    string
	Version string
}

// CocoaPods identifies a CocoaPods pod at an exact version.
type CocoaPods struct {
	Name    string
	Version string
}

// Maven identifies a Maven artifact at an exact version.
type Maven struct {
	GroupID    string
	ArtifactID string
	Version    string
}

func (Git) Kind() string       { return "git" }
func (GitHub) Kind() string    { return "github" }
func (Npm) Kind() string       { return "npm" }
func (CocoaPods) Kind() string { return "cocoapods" }
func (Maven) Kind() string     { return "maven" }

func (Git) sealed()       {}
func (GitHub) sealed()    {}
func (Npm) sealed()       {}
func (CocoaPods) sealed() {}
func (Maven) sealed()     {}

func (d Git) String() string {
	if d.Head == "" {
		return "git:" + d.URL
	}
	return fmt.Sprintf("git:%s#%s", d.URL, d.Head)
}

func (d GitHub) String() string {
	if d.Head == "" {
		return fmt.Sprintf("github:%s/%s", d.Owner, d.Name)
	}
	return fmt.Sprintf("github:%s/%s#%s", d.Owner, d.Name, d.Head)
}

func (d Npm) String() string       { return fmt.Sprintf("npm:%s@%s", d.Name, d.Version) }
func (d CocoaPods) String() string { return fmt.Sprintf("cocoapods:%s@%s", d.Name, d.Version) }

func (d Maven) String() string {
	return fmt.Sprintf("maven:%s:%s@%s", d.GroupID, d.ArtifactID, d.Version)
}

// MarshalJSON encodes the identity as a discriminated record.
func (d Git) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		URL  string `json:"url"`
		Head string `json:"head,omitempty"`
	}{d.Kind(), d.URL, d.Head})
}

// MarshalJSON encodes the identity as a discriminated record.
func (d GitHub) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Owner string `json:"owner"`
		Name  string `json:"name"`
		Head  string `json:"head,omitempty"`
	}{d.Kind(), d.Owner, d.Name, d.Head})
}

// MarshalJSON encodes the identity as a discriminated record.
func (d Npm) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Name    string `json:"name"`
		Version string `json:"version"`
	}{d.Kind(), d.Name, d.Version})
}

// MarshalJSON encodes the identity as a discriminated record.
func (d CocoaPods) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string `json:"kind"`
		Name    string `json:"name"`
		Version string `json:"version"`
	}{d.Kind(), d.Name, d.Version})
}

// MarshalJSON encodes the identity as a discriminated record.
func (d Maven) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string `json:"kind"`
		GroupID    string `json:"group_id"`
		ArtifactID string `json:"artifact_id"`
		Version    string `json:"version"`
	}{d.Kind(), d.GroupID, d.ArtifactID, d.Version})
}

// sshGitHubPrefix is the git-over-SSH shorthand for GitHub repositories.
const sshGitHubPrefix = "git@github.com:"

// Canonicalize reduces equivalent surface forms of one logical dependency
// to a single identity. A [Git] identity whose URL matches the SSH
// shorthand git@github.com:<owner>/<name>.git becomes the equivalent
// [GitHub] identity, preserving the head. Every other identity (including
// non-GitHub git URLs) is returned unchanged.
//
// Canonicalize is idempotent: applying it twice yields the same result
// as applying it once.
func Canonicalize(d Dependency) Dependency {
	g, ok := d.(Git)
	if !ok {
		return d
	}
	rest, ok := strings.CutPrefix(g.URL, sshGitHubPrefix)
	if !ok {
		return d
	}
	owner, rest, ok := strings.Cut(rest, "/")
	if !ok {
		return d
	}
	name, _, ok := strings.Cut(rest, ".git")
	if !ok {
		return d
	}
	return GitHub{Owner: owner, Name: name, Head: g.Head}
}

// Set is a deduplicated collection of dependency identities.
// Membership is structural: two identities collide exactly when they are
// the same kind with the same fields.
type Set map[Dependency]struct{}

// NewSet creates a Set containing the given identities.
func NewSet(deps ...Dependency) Set {
	s := make(Set, len(deps))
	for _, d := range deps {
		s.Add(d)
	}
	return s
}

// Add inserts d into the set.
func (s Set) Add(d Dependency) { s[d] = struct{}{} }

// Has reports whether d is in the set.
func (s Set) Has(d Dependency) bool {
	_, ok := s[d]
	return ok
}

// Len returns the number of distinct identities in the set.
func (s Set) Len() int { return len(s) }

// Sorted returns the identities ordered by kind, then by their string
// rendering. The order is deterministic for a given set.
func (s Set) Sorted() []Dependency {
	out := make([]Dependency, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind() != out[j].Kind() {
			return out[i].Kind() < out[j].Kind()
		}
		return out[i].String() < out[j].String()
	})
	return out
}

// Canonicalized returns a new Set with [Canonicalize] applied to every
// identity. Identities that canonicalize to the same value are merged.
func (s Set) Canonicalized() Set {
	out := make(Set, len(s))
	for d := range s {
		out.Add(Canonicalize(d))
	}
	return out
}
