package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/dependency"
	"github.com/depscout/depscout/pkg/fetch"
	"github.com/depscout/depscout/pkg/lockfile/yarn"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	output  string // output file path (derived from the identity if empty)
	refresh bool   // bypass HTTP cache
}

// newFetchCmd creates the fetch command, which downloads the source archive
// for a single resolution and writes it to disk as a zip file.
func newFetchCmd() *cobra.Command {
	opts := fetchOpts{}

	cmd := &cobra.Command{
		Use:   "fetch <resolution>",
		Short: "Fetch the source archive for a resolution as a zip file",
		Long: `Fetch the source archive for a lockfile resolution.

The resolution is normalized into a dependency identity first, so it accepts
the same syntax as yarn.lock resolution fields. The registry tarball is
downloaded and losslessly repacked as a zip file with Zstandard entries.

Examples:
  depscout fetch lodash@npm:4.17.21
  depscout fetch "@fortawesome/fontawesome-common-types@npm:6.4.0" -o types.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return fetchArchive(c, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from the package name if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")

	return cmd
}

// fetchArchive normalizes the resolution, downloads its archive, and writes
// the zip to opts.output.
func fetchArchive(cmd *cobra.Command, opts *fetchOpts, resolution string) error {
	logger := loggerFromContext(cmd.Context())

	dep, err := yarn.Normalize(resolution)
	if err != nil {
		return err
	}
	logger.Infof("Fetching %s", dep)

	f, err := fetch.New(fetch.DefaultCacheTTL)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	zipped, err := f.Fetch(cmd.Context(), dep, opts.refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Fetched %d bytes", len(zipped)))

	path := opts.output
	if path == "" {
		path = archiveName(dep)
	}
	if err := os.WriteFile(path, zipped, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	printSuccess("Fetched %s", StyleHighlight.Render(dep.String()))
	printFile(path)
	return nil
}

// archiveName derives a zip filename from a dependency identity.
// Scoped npm names drop the scope prefix; path separators never leak into
// the filename.
func archiveName(dep dependency.Dependency) string {
	switch d := dep.(type) {
	case dependency.Npm:
		name := d.Name
		if _, base, ok := strings.Cut(name, "/"); ok {
			name = base
		}
		return fmt.Sprintf("%s-%s.zip", name, d.Version)
	default:
		return strings.NewReplacer("/", "-", ":", "-", "@", "-").Replace(dep.String()) + ".zip"
	}
}
