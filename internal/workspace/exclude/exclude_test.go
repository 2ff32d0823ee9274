package exclude

import (
	"fmt"
	"testing"
)

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.py", false},
		{"src/main.py", false},
		{"README.md", false},
		{".DS_Store", true},
		{"docs/.DS_Store", true},
		{"package-lock.json", true},
		{".env", true},
		{"node_modules/react/index.js", true},
		{"src/node_modules/pkg/index.js", true},
		{".git/HEAD", true},
		{"app/dist/bundle.js", true},
		{"logo.png", true},
		{"assets/fonts/inter.woff2", true},
		{"backup.sql", true},
		{"src/distro/main.py", false},
		{"builder.go", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := IsExcluded(tc.path); got != tc.want {
				t.Errorf("IsExcluded(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestIsExcludedAnyNestingDepth(t *testing.T) {
	// Extension rules apply regardless of how deeply the file is nested.
	p := "image.png"
	for depth := 0; depth < 6; depth++ {
		if !IsExcluded(p) {
			t.Errorf("expected %q to be excluded", p)
		}
		p = fmt.Sprintf("level%d/%s", depth, p)
	}
}

func TestIsExcludedCaseSensitive(t *testing.T) {
	// Matching is exact, so a different case does not match the rule tables.
	if IsExcluded("NODE_MODULES/pkg/index.js") {
		t.Error("directory matching should be case-sensitive")
	}
	if IsExcluded(".ds_store") {
		t.Error("filename matching should be case-sensitive")
	}
}
