// Package yarn extracts dependency identities from Yarn Berry (v2+)
// lockfiles.
//
// Every lockfile entry carries a "resolution" string, which is a pinned
// descriptor:
//
//	<ident>@<range>
//
// where ident is the package name (e.g. lodash, @types/lodash) and range
// follows
//
//	<protocol>:<selector>(#<source>)?(::<bindings>)?
//
// with the selector holding an exact version. Two non-standard exceptions
// bypass the range grammar entirely: git-over-SSH ranges (git@host...) and
// GitHub HTTPS ranges (https://github.com/...), both of which pin a commit
// via a #commit= marker.
//
// [Normalize] maps one resolution string to a [dependency.Dependency];
// [Collect] walks a whole lockfile document and accumulates the
// deduplicated identity set, skipping entries whose resolutions are
// well-formed but unsupported.
package yarn
