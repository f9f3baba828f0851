package yarn

import (
	"reflect"
	"testing"

	"github.com/depscout/depscout/pkg/errors"
)

func TestSplitIdent(t *testing.T) {
	tests := []struct {
		descriptor string
		ident      string
		rng        string
		wantErr    bool
	}{
		{"lodash@npm:4.17.21", "lodash", "npm:4.17.21", false},
		{"@scope/name@npm:1.2.3", "@scope/name", "npm:1.2.3", false},
		{"@types/node@npm:20.4.2", "@types/node", "npm:20.4.2", false},
		{"no-separator", "", "", true},
		{"@scope/only", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			ident, rng, err := splitIdent(tt.descriptor)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if !errors.Is(err, errors.ErrCodeInvalidLockfile) {
					t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidLockfile)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitIdent failed: %v", err)
			}
			if ident != tt.ident || rng != tt.rng {
				t.Errorf("splitIdent() = (%q, %q), want (%q, %q)", ident, rng, tt.ident, tt.rng)
			}
		})
	}
}

func TestParseDescriptor_GitURL(t *testing.T) {
	descriptor := "cjk-slug@git@github.com:daangn/cjk-slug.git#commit=de5d97557a09ad61ae6ac48b1258b67d304660f0"

	got, err := parseDescriptor(descriptor)
	if err != nil {
		t.Fatalf("parseDescriptor failed: %v", err)
	}
	want := gitDescriptor{
		ident:      "cjk-slug",
		url:        "git@github.com:daangn/cjk-slug.git",
		commitHash: "de5d97557a09ad61ae6ac48b1258b67d304660f0",
	}
	if got != want {
		t.Errorf("parseDescriptor() = %+v, want %+v", got, want)
	}
}

func TestParseDescriptor_GitURLSlashForm(t *testing.T) {
	// Yarn's non-standard serialization uses '/' instead of ':' after the
	// host; the parsed URL must come out in canonical scp-like form.
	descriptor := "cjk-slug@git@github.com/daangn/cjk-slug.git#commit=de5d97557a09ad61ae6ac48b1258b67d304660f0"

	got, err := parseDescriptor(descriptor)
	if err != nil {
		t.Fatalf("parseDescriptor failed: %v", err)
	}
	want := gitDescriptor{
		ident:      "cjk-slug",
		url:        "git@github.com:daangn/cjk-slug.git",
		commitHash: "de5d97557a09ad61ae6ac48b1258b67d304660f0",
	}
	if got != want {
		t.Errorf("parseDescriptor() = %+v, want %+v", got, want)
	}
}

func TestParseDescriptor_GitHubURL(t *testing.T) {
	descriptor := "cjk-slug@https://github.com/daangn/cjk-slug.git#commit=de5d97557a09ad61ae6ac48b1258b67d304660f0"

	got, err := parseDescriptor(descriptor)
	if err != nil {
		t.Fatalf("parseDescriptor failed: %v", err)
	}
	want := gitDescriptor{
		ident:      "cjk-slug",
		url:        "https://github.com/daangn/cjk-slug.git",
		commitHash: "de5d97557a09ad61ae6ac48b1258b67d304660f0",
	}
	if got != want {
		t.Errorf("parseDescriptor() = %+v, want %+v", got, want)
	}
}

func TestParseDescriptor_GitWithoutCommitMarker(t *testing.T) {
	for _, descriptor := range []string{
		"pkg@git@github.com:owner/repo.git",
		"pkg@https://github.com/owner/repo.git#deadbeef",
	} {
		if _, err := parseDescriptor(descriptor); err == nil {
			t.Errorf("parseDescriptor(%q) succeeded, want error", descriptor)
		}
	}
}

func TestParseDescriptor_PrivateRegistry(t *testing.T) {
	descriptor := "@fortawesome/pro-solid-svg-icons@npm:6.4.0::__archiveUrl=https%3A%2F%2Fnpm.fontawesome.com%2F%40fortawesome%2Fpro-solid-svg-icons%2F-%2F6.4.0%2Fpro-solid-svg-icons-6.4.0.tgz"

	got, err := parseDescriptor(descriptor)
	if err != nil {
		t.Fatalf("parseDescriptor failed: %v", err)
	}
	reg, ok := got.(regularDescriptor)
	if !ok {
		t.Fatalf("parseDescriptor() = %T, want regularDescriptor", got)
	}
	if reg.ident != "@fortawesome/pro-solid-svg-icons" {
		t.Errorf("ident = %q", reg.ident)
	}
	if reg.rng.protocol != "npm:" || reg.rng.selector != "6.4.0" || reg.rng.source != "" {
		t.Errorf("range = %+v", reg.rng)
	}
	wantBindings := map[string]string{
		"__archiveUrl": "https://npm.fontawesome.com/@fortawesome/pro-solid-svg-icons/-/6.4.0/pro-solid-svg-icons-6.4.0.tgz",
	}
	if !reflect.DeepEqual(reg.rng.bindings, wantBindings) {
		t.Errorf("bindings = %v, want %v", reg.rng.bindings, wantBindings)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		rng     string
		want    packageRange
		wantErr bool
	}{
		{
			name: "protocol and selector",
			rng:  "npm:4.17.21",
			want: packageRange{protocol: "npm:", selector: "4.17.21"},
		},
		{
			name: "with source",
			rng:  "patch:lodash@npm%3A4.17.21#./patches/lodash.patch",
			want: packageRange{protocol: "patch:", selector: "lodash@npm%3A4.17.21", source: "./patches/lodash.patch"},
		},
		{
			name: "source then bindings",
			rng:  "patch:x@npm%3A1.0.0#./p.patch::version=1.0.0",
			want: packageRange{
				protocol: "patch:",
				selector: "x@npm%3A1.0.0",
				source:   "./p.patch",
				bindings: map[string]string{"version": "1.0.0"},
			},
		},
		{
			name: "bindings without source",
			rng:  "npm:1.0.0::a=1&b=2",
			want: packageRange{protocol: "npm:", selector: "1.0.0", bindings: map[string]string{"a": "1", "b": "2"}},
		},
		{
			name: "duplicate binding keys keep the last",
			rng:  "npm:1.0.0::a=1&a=2",
			want: packageRange{protocol: "npm:", selector: "1.0.0", bindings: map[string]string{"a": "2"}},
		},
		{
			name:    "no protocol separator",
			rng:     "just-a-version",
			wantErr: true,
		},
		{
			name:    "whitespace in selector",
			rng:     "npm:1.0 .0",
			wantErr: true,
		},
		{
			name:    "newline in range",
			rng:     "npm:1.0.0\n::a=1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRange("pkg@"+tt.rng, tt.rng)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRange failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRewriteSCPForm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"git@github.com/owner/repo.git", "git@github.com:owner/repo.git"},
		{"git@github.com:owner/repo.git", "git@github.com:owner/repo.git"},
		{"git@gitlab.com/group/project.git", "git@gitlab.com:group/project.git"},
	}
	for _, tt := range tests {
		if got := rewriteSCPForm(tt.in); got != tt.want {
			t.Errorf("rewriteSCPForm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
