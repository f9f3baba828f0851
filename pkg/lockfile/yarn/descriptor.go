package yarn

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/depscout/depscout/pkg/errors"
)

// packageDescriptor is the parse result for one resolution string.
// Exactly two shapes exist: a regular protocol range, or a raw git URL
// pinned to a commit.
type packageDescriptor interface {
	isDescriptor()
}

// regularDescriptor is a resolution whose range follows the standard
// protocol grammar.
type regularDescriptor struct {
	ident string
	rng   packageRange
}

// gitDescriptor is a resolution whose range is a raw git URL. There is no
// support for ssh:// or file:// schemes.
type gitDescriptor struct {
	ident      string
	url        string
	commitHash string
}

func (regularDescriptor) isDescriptor() {}
func (gitDescriptor) isDescriptor()     {}

// packageRange holds the structured fields of a range string.
type packageRange struct {
	protocol string            // always ends with ':' (e.g. "npm:")
	selector string            // exact pinned version or encoded inner descriptor
	source   string            // optional; empty when absent
	bindings map[string]string // optional; nil when absent
}

const commitMarker = "#commit="

func invalidDescriptor(descriptor string) error {
	return errors.New(errors.ErrCodeInvalidLockfile, "resolution has unsupported descriptor: %s", descriptor)
}

// parseDescriptor decodes a full resolution string into a packageDescriptor.
func parseDescriptor(descriptor string) (packageDescriptor, error) {
	ident, rng, err := splitIdent(descriptor)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(rng, "git@"):
		// Yarn serializes SSH-style git URLs with a '/' instead of ':'
		// after the host (git@github.com/owner/repo.git). Rewrite to the
		// canonical scp-like form before splitting off the commit.
		rng = rewriteSCPForm(rng)
		repoURL, commit, ok := strings.Cut(rng, commitMarker)
		if !ok {
			return nil, invalidDescriptor(descriptor)
		}
		return gitDescriptor{ident: ident, url: repoURL, commitHash: commit}, nil

	case strings.HasPrefix(rng, "https://github.com/"):
		repoURL, commit, ok := strings.Cut(rng, commitMarker)
		if !ok {
			return nil, invalidDescriptor(descriptor)
		}
		return gitDescriptor{ident: ident, url: repoURL, commitHash: commit}, nil

	default:
		pr, err := parseRange(descriptor, rng)
		if err != nil {
			return nil, err
		}
		return regularDescriptor{ident: ident, rng: pr}, nil
	}
}

// splitIdent splits a descriptor into package name and range. Scoped
// packages (@scope/name) embed an '@' in the ident, so the split happens
// at the second '@' for those and at the first '@' otherwise.
func splitIdent(descriptor string) (ident, rng string, err error) {
	if strings.HasPrefix(descriptor, "@") {
		i := strings.Index(descriptor[1:], "@")
		if i < 0 {
			return "", "", invalidDescriptor(descriptor)
		}
		at := i + 1
		return descriptor[:at], descriptor[at+1:], nil
	}
	ident, rng, ok := strings.Cut(descriptor, "@")
	if !ok {
		return "", "", invalidDescriptor(descriptor)
	}
	return ident, rng, nil
}

// rewriteSCPForm replaces the first '/' after the host with ':' in a
// slash-form SSH URL (git@github.com/owner/repo.git). Colon-form input is
// returned unchanged.
func rewriteSCPForm(rng string) string {
	rest := strings.TrimPrefix(rng, "git@")
	i := strings.IndexAny(rest, ":/")
	if i < 0 || rest[i] == ':' {
		return rng
	}
	return "git@" + rest[:i] + ":" + rest[i+1:]
}

// protocolRE matches the protocol prefix of a range, trailing ':' included.
// Compiled once at package initialization; the '#' and '::' delimiters are
// located with index scans because RE2 supports no lookahead.
var protocolRE = regexp.MustCompile(`^[^#:\s]*:`)

// parseRange decodes `<protocol>:<selector>(#<source>)?(::<bindings>)?`.
// The descriptor argument is only used for error messages.
func parseRange(descriptor, rng string) (packageRange, error) {
	if strings.ContainsAny(rng, "\n\r") {
		return packageRange{}, invalidDescriptor(descriptor)
	}

	protocol := protocolRE.FindString(rng)
	if protocol == "" {
		return packageRange{}, invalidDescriptor(descriptor)
	}
	rest := rng[len(protocol):]

	var bindings map[string]string
	if i := strings.Index(rest, "::"); i >= 0 {
		b, err := decodeBindings(rest[i+2:])
		if err != nil {
			return packageRange{}, invalidDescriptor(descriptor)
		}
		bindings = b
		rest = rest[:i]
	}

	selector := rest
	var source string
	if i := strings.Index(rest, "#"); i >= 0 {
		selector, source = rest[:i], rest[i+1:]
	}
	if strings.IndexFunc(selector, unicode.IsSpace) >= 0 {
		return packageRange{}, invalidDescriptor(descriptor)
	}

	return packageRange{
		protocol: protocol,
		selector: selector,
		source:   source,
		bindings: bindings,
	}, nil
}

// decodeBindings parses the bindings substring with query-string semantics:
// '&'-joined key=value pairs, percent-decoded exactly once, last occurrence
// winning on duplicate keys.
func decodeBindings(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k, vs := range values {
		out[k] = vs[len(vs)-1]
	}
	return out, nil
}
