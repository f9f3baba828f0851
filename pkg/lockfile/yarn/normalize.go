package yarn

import (
	"net/url"
	"unicode/utf8"

	"github.com/depscout/depscout/pkg/dependency"
	"github.com/depscout/depscout/pkg/errors"
)

// maxPatchDepth bounds recursive patch: unwrapping so that crafted
// nested-patch input fails cleanly instead of exhausting the stack.
const maxPatchDepth = 16

// archiveURLBinding marks an npm resolution hosted on a private or custom
// registry, which this tool cannot represent as a plain npm identity.
const archiveURLBinding = "__archiveUrl"

// Normalize maps a single resolution string to a dependency identity.
//
// It fails with an ErrCodeInvalidLockfile error when the resolution is
// malformed, and with [errors.UnsupportedResolutionError] when the
// resolution is well-formed but not representable (an unhandled protocol,
// or an npm package bound to a private registry).
func Normalize(resolution string) (dependency.Dependency, error) {
	return normalize(resolution, 0)
}

func normalize(resolution string, depth int) (dependency.Dependency, error) {
	if depth > maxPatchDepth {
		return nil, errors.New(errors.ErrCodeInvalidLockfile,
			"patch protocol nested deeper than %d levels: %s", maxPatchDepth, resolution)
	}

	desc, err := parseDescriptor(resolution)
	if err != nil {
		return nil, err
	}

	switch d := desc.(type) {
	case gitDescriptor:
		return dependency.Git{URL: d.url, Head: d.commitHash}, nil

	case regularDescriptor:
		switch d.rng.protocol {
		case "npm:":
			if _, ok := d.rng.bindings[archiveURLBinding]; ok {
				return nil, &errors.UnsupportedResolutionError{Resolution: resolution}
			}
			return dependency.Npm{Name: d.ident, Version: d.rng.selector}, nil

		case "patch:":
			// The wrapped descriptor lives in the selector, percent-encoded
			// once (e.g. patch:lodash@npm%3A4.17.21#./fix.patch).
			inner, err := url.PathUnescape(d.rng.selector)
			if err != nil || !utf8.ValidString(inner) {
				return nil, errors.New(errors.ErrCodeInvalidLockfile,
					"patch selector is not valid percent-encoded UTF-8: %s", resolution)
			}
			return normalize(inner, depth+1)

		default:
			return nil, &errors.UnsupportedResolutionError{Resolution: resolution}
		}
	}

	return nil, errors.New(errors.ErrCodeInternal, "unhandled descriptor shape for %s", resolution)
}
