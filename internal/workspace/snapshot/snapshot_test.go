package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jmallory/sandkit/internal/sandbox"
)

// fakeFS is an in-memory sandbox.FileSystem covering the snapshot surface.
type fakeFS struct {
	files   map[string][]byte
	dirs    map[string]bool
	listErr error
	readErr map[string]error
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		files:   make(map[string][]byte),
		dirs:    make(map[string]bool),
		readErr: make(map[string]error),
	}
}

func (f *fakeFS) GetFileInfo(_ context.Context, path string) (sandbox.FileInfo, error) {
	if content, ok := f.files[path]; ok {
		return sandbox.FileInfo{Name: base(path), Size: int64(len(content))}, nil
	}
	if f.dirs[path] {
		return sandbox.FileInfo{Name: base(path), IsDir: true}, nil
	}
	return sandbox.FileInfo{}, errors.New("not found")
}

func (f *fakeFS) ListFiles(_ context.Context, path string) ([]sandbox.FileInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var infos []sandbox.FileInfo
	for p, content := range f.files {
		if dir(p) == path {
			infos = append(infos, sandbox.FileInfo{Name: base(p), Size: int64(len(content))})
		}
	}
	for p := range f.dirs {
		if dir(p) == path {
			infos = append(infos, sandbox.FileInfo{Name: base(p), IsDir: true})
		}
	}
	return infos, nil
}

func (f *fakeFS) DownloadFile(_ context.Context, path string) ([]byte, error) {
	if err, ok := f.readErr[path]; ok {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return content, nil
}

func (f *fakeFS) UploadFile(_ context.Context, path string, content []byte) error {
	f.files[path] = content
	return nil
}

func (f *fakeFS) SetPermissions(context.Context, string, fs.FileMode) error {
	return nil
}

func (f *fakeFS) CreateFolder(_ context.Context, path string, _ fs.FileMode) error {
	f.dirs[path] = true
	return nil
}

func (f *fakeFS) DeleteFile(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeFS) DeleteFolder(_ context.Context, path string) error {
	delete(f.dirs, path)
	return nil
}

func base(p string) string { return p[strings.LastIndex(p, "/")+1:] }
func dir(p string) string  { return p[:strings.LastIndex(p, "/")] }

func TestBuildSkipsExcludedAndDirectories(t *testing.T) {
	fs := newFakeFS()
	fs.files["/workspace/main.py"] = []byte("print('hi')\n")
	fs.files["/workspace/package-lock.json"] = []byte("{}")
	fs.dirs["/workspace/src"] = true

	state, err := NewBuilder(fs, "/workspace").Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(state) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(state), keys(state))
	}
	rec, ok := state["main.py"]
	if !ok {
		t.Fatal("expected main.py in snapshot")
	}
	if rec.Content != "print('hi')\n" || rec.IsDir {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestBuildStoresOnlyValidUTF8(t *testing.T) {
	fs := newFakeFS()
	fs.files["/workspace/readme.txt"] = []byte("plain\n")
	fs.files["/workspace/utf16.txt"] = []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}

	state, err := NewBuilder(fs, "/workspace").Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := state["utf16.txt"]; ok {
		t.Error("UTF-16 file should be skipped rather than stored raw")
	}
	for rel, rec := range state {
		if !utf8.ValidString(rec.Content) {
			t.Errorf("stored content for %s is not valid UTF-8", rel)
		}
	}
}

func TestBuildSkipsBinaryFiles(t *testing.T) {
	fs := newFakeFS()
	fs.files["/workspace/data.dat"] = []byte{0x00, 0x01, 0x02}
	fs.files["/workspace/readme.md"] = []byte("# readme\n")

	state, err := NewBuilder(fs, "/workspace").Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := state["data.dat"]; ok {
		t.Error("binary file should be skipped")
	}
	if _, ok := state["readme.md"]; !ok {
		t.Error("text file should be present")
	}
}

func TestBuildSkipsUnreadableFiles(t *testing.T) {
	fs := newFakeFS()
	fs.files["/workspace/ok.txt"] = []byte("ok")
	fs.files["/workspace/broken.txt"] = []byte("never seen")
	fs.readErr["/workspace/broken.txt"] = errors.New("io failure")

	state, err := NewBuilder(fs, "/workspace").Build(context.Background())
	if err != nil {
		t.Fatalf("per-file failures must not fail the snapshot: %v", err)
	}
	if len(state) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(state))
	}
	if _, ok := state["ok.txt"]; !ok {
		t.Error("readable file should survive a sibling's failure")
	}
}

func TestBuildListingFailureIsAnError(t *testing.T) {
	fs := newFakeFS()
	fs.listErr = errors.New("sandbox unavailable")

	if _, err := NewBuilder(fs, "/workspace").Build(context.Background()); err == nil {
		t.Error("a failing top-level listing must surface as an error")
	}
}

func TestBuildHonorsGitignore(t *testing.T) {
	fs := newFakeFS()
	fs.files["/workspace/.gitignore"] = []byte("*.log\n")
	fs.files["/workspace/app.log"] = []byte("log line\n")
	fs.files["/workspace/app.go"] = []byte("package app\n")

	state, err := NewBuilder(fs, "/workspace").Build(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := state["app.log"]; ok {
		t.Error("gitignored file should be hidden")
	}
	if _, ok := state["app.go"]; !ok {
		t.Error("non-ignored file should be present")
	}
	// .gitignore itself is in the static exclusion table.
	if _, ok := state[".gitignore"]; ok {
		t.Error(".gitignore should not appear in the snapshot")
	}
}

func TestIsText(t *testing.T) {
	if !isText([]byte("plain text\n")) {
		t.Error("plain text misdetected as binary")
	}
	if isText([]byte{'a', 0x00, 'b'}) {
		t.Error("null byte should mean binary")
	}
	if isText([]byte{0xC3}) {
		t.Error("invalid UTF-8 should mean binary")
	}
	if isText([]byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}) {
		t.Error("UTF-16 content should be skipped, not stored raw")
	}
	if isText([]byte{0xFE, 0xFF, 0x00, 'h'}) {
		t.Error("big-endian UTF-16 content should be skipped")
	}
}

func keys(m map[string]FileRecord) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
