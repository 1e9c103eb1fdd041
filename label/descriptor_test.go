package label

import (
	"slices"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		input     string
		wantName  string
		wantRange string
		wantErr   bool
	}{
		{"lodash@^4.17.21", "lodash", "^4.17.21", false},
		{"@babel/core@^7.0.0", "@babel/core", "^7.0.0", false},
		{"foolib@npm:1.2.3 || ^2.0.0", "foolib", "npm:1.2.3 || ^2.0.0", false},
		{"resolve@patch:resolve@npm%3A^1.20.0#~builtin<compat/resolve>", "resolve", "patch:resolve@npm%3A^1.20.0#~builtin<compat/resolve>", false},
		{"left-pad@", "left-pad", "", false},
		{"@scope/pkg@workspace:.", "@scope/pkg", "workspace:.", false},
		// Invalid
		{"lodash", "", "", true},
		{"", "", "", true},
		{"@scope@1.0.0", "", "", true},
		{"bad name@1.0.0", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDescriptor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDescriptor(%q) expected error, got %v", tt.input, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescriptor(%q) unexpected error: %v", tt.input, err)
			}
			if d.Name != tt.wantName {
				t.Errorf("ParseDescriptor(%q).Name = %q, want %q", tt.input, d.Name, tt.wantName)
			}
			if d.Range != tt.wantRange {
				t.Errorf("ParseDescriptor(%q).Range = %q, want %q", tt.input, d.Range, tt.wantRange)
			}
		})
	}
}

func TestDescriptor_String(t *testing.T) {
	d := Descriptor{Name: "@types/node", Range: "^20.0.0"}
	if got := d.String(); got != "@types/node@^20.0.0" {
		t.Errorf("String() = %q, want %q", got, "@types/node@^20.0.0")
	}
}

func TestCompare(t *testing.T) {
	ds := []Descriptor{
		{Name: "rollup", Range: "^4.0.0"},
		{Name: "fsevents", Range: "~2.3.3"},
		{Name: "fsevents", Range: "~2.3.2"},
		{Name: "@esbuild/linux-x64", Range: "0.20.2"},
	}
	slices.SortFunc(ds, Compare)

	want := []string{
		"@esbuild/linux-x64@0.20.2",
		"fsevents@~2.3.2",
		"fsevents@~2.3.3",
		"rollup@^4.0.0",
	}
	for i, d := range ds {
		if d.String() != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, d.String(), want[i])
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"npm:^1.0.0", "^1.0.0"},
		{"workspace:.", "."},
		{"workspace:^", "^"},
		{"^1.0.0", "^1.0.0"},
		{"patch:resolve@npm%3A^1.20.0#~builtin<compat/resolve>", "patch:resolve@npm%3A^1.20.0#~builtin<compat/resolve>"},
		{"npm:npm:1.0.0", "npm:1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeRange(tt.input); got != tt.want {
				t.Errorf("NormalizeRange(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPatchRange(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"patch:resolve@npm%3A^1.20.0#~builtin<compat/resolve>", true},
		{"patch:typescript@npm%3A5.4.3#optional!builtin<compat/typescript>", true},
		{"^1.0.0", false},
		{"github:user/repo#semver:^1.0.0", false},
		{"git+https://github.com/user/repo.git#v1.0.0", false},
		{"https://github.com/user/repo.git#abc123", false},
		{"git@github.com:user/repo#main", false},
		{"user/repo#v1.2.0", false},
		{"https://github.com/user/repo#v1.2.0", false},
		{"https://registry.yarnpkg.com/left-pad/-/left-pad-1.3.0.tgz#5b8a3a7765dfe001261dde915589e782f8c94d1e", false},
		{"patch:left-pad@1.3.0#./patches/left-pad.patch::version=1.3.0", true},
		{"1.0.0#ref", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsPatchRange(tt.input); got != tt.want {
				t.Errorf("IsPatchRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsVCSRange(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"github:user/repo#semver:^1.0.0", true},
		{"git+ssh://git@github.com/user/repo.git#v1", true},
		{"user/repo", true},
		{"user/repo#v1.2.0", true},
		{"user/repo#semver:^1.0.0", true},
		{"https://github.com/user/repo#main", true},
		{"^1.0.0", false},
		{"file:../pkg", false},
		{"./vendor/pkg", false},
		{"~/pkg#x", false},
		{"a/b/c#x", false},
		{"patch:resolve@npm%3A^1.20.0#~builtin<compat/resolve>", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsVCSRange(tt.input); got != tt.want {
				t.Errorf("IsVCSRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
