package cli

import (
	"strings"
	"testing"

	"github.com/depscout/depscout/pkg/dependency"
)

func TestArchiveName(t *testing.T) {
	tests := []struct {
		name string
		dep  dependency.Dependency
		want string
	}{
		{
			"plain npm",
			dependency.Npm{Name: "lodash", Version: "4.17.21"},
			"lodash-4.17.21.zip",
		},
		{
			"scoped npm",
			dependency.Npm{Name: "@urlpack/json", Version: "1.1.0"},
			"json-1.1.0.zip",
		},
		{
			"github",
			dependency.GitHub{Owner: "daangn", Name: "cjk-slug", Head: "abc123"},
			"github-daangn-cjk-slug#abc123.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := archiveName(tt.dep)
			if got != tt.want {
				t.Errorf("archiveName() = %q, want %q", got, tt.want)
			}
			if strings.ContainsAny(got, "/:@") {
				t.Errorf("archiveName() = %q contains path or URL separators", got)
			}
		})
	}
}

func TestFetch_InvalidResolution(t *testing.T) {
	cmd := newFetchCmd()
	cmd.SetArgs([]string{"not a resolution"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for invalid resolution")
	}
}
