package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/dependency"
	"github.com/depscout/depscout/pkg/lockfile/yarn"
)

// collectOpts holds the command-line flags for the collect command.
type collectOpts struct {
	output    string // output file path (stdout if empty)
	canonical bool   // fold equivalent surface forms before output
}

// newCollectCmd creates the collect command, which reads a yarn.lock file
// and emits every pinned dependency identity it contains as a JSON array.
//
// Identities are structurally deduplicated: two lockfile entries that pin
// the same package at the same version yield one identity. With --canonical,
// the git-over-SSH GitHub shorthand is additionally rewritten into a github
// identity, merging it with any other spelling of the same repository.
func newCollectCmd() *cobra.Command {
	opts := collectOpts{}

	cmd := &cobra.Command{
		Use:   "collect [lockfile]",
		Short: "Collect pinned dependency identities from a yarn.lock file",
		Long: `Collect pinned dependency identities from a Yarn berry lockfile.

Every resolution in the lockfile is parsed and normalized into a canonical
identity (npm package, git repository, ...). Resolutions that depscout cannot
represent, such as packages pinned to a private registry archive URL, are
skipped.

Examples:
  depscout collect                         # ./yarn.lock
  depscout collect web/yarn.lock           # explicit path
  depscout collect --canonical -o deps.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := "yarn.lock"
			if len(args) == 1 {
				path = args[0]
			}
			return collect(c, &opts, path)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.canonical, "canonical", false, "fold equivalent surface forms (github SSH shorthand) into one identity")

	return cmd
}

// collect reads the lockfile at path and writes its identities as JSON.
func collect(cmd *cobra.Command, opts *collectOpts, path string) error {
	logger := loggerFromContext(cmd.Context())
	logger.Infof("Collecting identities from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lockfile: %w", err)
	}

	prog := newProgress(logger)
	set, err := yarn.Collect(data)
	if err != nil {
		return err
	}
	if opts.canonical {
		set = set.Canonicalized()
	}
	prog.done(fmt.Sprintf("Collected %d identities", set.Len()))

	return writeIdentities(set, opts.output, logger)
}

// writeIdentities serializes the set as a JSON array in deterministic order
// to the specified path (or stdout if empty).
func writeIdentities(set dependency.Set, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set.Sorted()); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote identities to %s", path)
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
