package yarn

import (
	"gopkg.in/yaml.v3"

	"github.com/depscout/depscout/pkg/dependency"
	"github.com/depscout/depscout/pkg/errors"
)

// Collect parses lockfile text and returns the deduplicated set of
// dependency identities pinned in it.
//
// The document must be a YAML mapping. The first entry is the lockfile
// metadata header written by the producer and is always skipped; the walk
// relies on the producer emitting it first and does not re-validate that.
// Every remaining entry must be a mapping with a string "resolution"
// field.
//
// Entries whose resolutions are well-formed but unsupported are dropped
// silently. Any format error aborts the whole walk: callers receive either
// a complete set or an error, never a partial result.
func Collect(data []byte) (dependency.Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLockfile, err, "not valid YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLockfile, "a mapping is expected")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidLockfile, "a mapping is expected")
	}

	deps := dependency.NewSet()

	// root.Content holds alternating key/value nodes in document order.
	// Index 0/1 is the metadata header entry.
	for i := 2; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		resolution, err := resolutionField(key.Value, value)
		if err != nil {
			return nil, err
		}

		dep, err := Normalize(resolution)
		if err != nil {
			if errors.IsUnsupportedResolution(err) {
				continue
			}
			return nil, err
		}
		deps.Add(dep)
	}

	return deps, nil
}

// resolutionField extracts the string "resolution" field from one lockfile
// entry value. The entry key is only used for error messages.
func resolutionField(entryKey string, value *yaml.Node) (string, error) {
	if value.Kind != yaml.MappingNode {
		return "", errors.New(errors.ErrCodeInvalidLockfile, "entry %q is not a mapping", entryKey)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Value != "resolution" {
			continue
		}
		if v.Kind != yaml.ScalarNode || v.Tag != "!!str" {
			return "", errors.New(errors.ErrCodeInvalidLockfile, "entry %q has a non-string resolution", entryKey)
		}
		return v.Value, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLockfile, "entry %q has no resolution field", entryKey)
}
