package pathutil

import "testing"

func TestClean(t *testing.T) {
	const root = "/workspace"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain relative path", "src/main.py", "src/main.py"},
		{"leading slash stripped", "/src/main.py", "src/main.py"},
		{"absolute workspace prefix collapsed", "/workspace/src/main.py", "src/main.py"},
		{"bare workspace prefix collapsed", "workspace/src/main.py", "src/main.py"},
		{"duplicated prefix collapsed", "/workspace/workspace/src/main.py", "src/main.py"},
		{"workspace root itself", "/workspace", ""},
		{"surrounding whitespace trimmed", "  src/main.py  ", "src/main.py"},
		{"dot segments preserved", "src/./main.py", "src/./main.py"},
		{"single file", "notes.txt", "notes.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Clean(tc.in, root)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanEmptyInput(t *testing.T) {
	if _, err := Clean("", "/workspace"); err != ErrInvalidPath {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestCleanIdempotent(t *testing.T) {
	const root = "/workspace"

	paths := []string{
		"src/main.py",
		"/workspace/src/main.py",
		"workspace/nested/dir/file.txt",
		"/deep/nested/path/x.go",
		"notes.txt",
	}

	for _, p := range paths {
		once, err := Clean(p, root)
		if err != nil {
			t.Fatalf("Clean(%q): %v", p, err)
		}
		if once == "" {
			continue
		}
		twice, err := Clean(once, root)
		if err != nil {
			t.Fatalf("Clean(Clean(%q)): %v", p, err)
		}
		if twice != once {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", p, once, twice)
		}
	}
}
