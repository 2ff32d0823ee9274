package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallory/sandkit/internal/sandbox"
	"github.com/jmallory/sandkit/internal/sandbox/local"
	"github.com/jmallory/sandkit/internal/tools/models"
	"github.com/jmallory/sandkit/internal/workspace/snapshot"
)

func newFilesTool(t *testing.T) (*FilesTool, string) {
	t.Helper()
	root := t.TempDir()
	conn := sandbox.Connected(local.NewFileSystem(0), nil)
	return NewFilesTool(conn, root), root
}

func TestCreateFileLifecycle(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	res := tool.CreateFile(ctx, models.CreateFileRequest{
		FilePath:     "notes.txt",
		FileContents: "first line\n",
	})
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, "notes.txt")

	content, err := os.ReadFile(filepath.Join(root, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first line\n", string(content))

	// Creating the same file again must fail.
	res = tool.CreateFile(ctx, models.CreateFileRequest{
		FilePath:     "notes.txt",
		FileContents: "other",
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "already exists")
}

func TestCreateFileMakesParents(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	res := tool.CreateFile(ctx, models.CreateFileRequest{
		FilePath:     "src/deep/main.py",
		FileContents: "print('hi')\n",
		Permissions:  "755",
	})
	require.True(t, res.Success, res.Message)

	info, err := os.Stat(filepath.Join(root, "src", "deep", "main.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCreateFileNormalizesAbsolutePath(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	// A path prefixed with the workspace root resolves like the relative one.
	res := tool.CreateFile(ctx, models.CreateFileRequest{
		FilePath:     root + "/prefixed.txt",
		FileContents: "x",
	})
	require.True(t, res.Success, res.Message)

	_, err := os.Stat(filepath.Join(root, "prefixed.txt"))
	require.NoError(t, err)
}

func TestCreateFileRejectsBadPermissions(t *testing.T) {
	tool, _ := newFilesTool(t)

	res := tool.CreateFile(context.Background(), models.CreateFileRequest{
		FilePath:     "x.txt",
		FileContents: "x",
		Permissions:  "rwxr--r--",
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "octal")
}

func TestFullFileRewrite(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	res := tool.FullFileRewrite(ctx, models.FullFileRewriteRequest{
		FilePath:     "missing.txt",
		FileContents: "x",
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "does not exist")

	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("old"), 0o644))

	res = tool.FullFileRewrite(ctx, models.FullFileRewriteRequest{
		FilePath:     "app.py",
		FileContents: "new content\n",
	})
	require.True(t, res.Success, res.Message)

	content, err := os.ReadFile(filepath.Join(root, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "new content\n", string(content))
}

func TestDeleteFile(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	res := tool.DeleteFile(ctx, models.DeleteFileRequest{FilePath: "ghost.txt"})
	require.False(t, res.Success)

	require.NoError(t, os.WriteFile(filepath.Join(root, "doomed.txt"), []byte("x"), 0o644))
	res = tool.DeleteFile(ctx, models.DeleteFileRequest{FilePath: "doomed.txt"})
	require.True(t, res.Success, res.Message)

	_, err := os.Stat(filepath.Join(root, "doomed.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestStrReplaceScenario(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	content := "def greet():\n    print('hello')\n\ndef farewell():\n    print('hello')\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte(content), 0o644))

	// Two occurrences: failure enumerating both 1-based line numbers.
	res := tool.StrReplace(ctx, models.StrReplaceRequest{
		FilePath: "app.py",
		OldStr:   "print('hello')",
		NewStr:   "print('hi')",
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "[2 5]")

	// Unique occurrence: success with a snippet around the edit.
	res = tool.StrReplace(ctx, models.StrReplaceRequest{
		FilePath: "app.py",
		OldStr:   "def greet():\n    print('hello')",
		NewStr:   "def greet():\n    print('hi')",
	})
	require.True(t, res.Success, res.Message)

	data, ok := res.Data.(models.StrReplaceData)
	require.True(t, ok, "expected StrReplaceData payload")
	assert.Contains(t, data.Snippet, "print('hi')")

	updated, err := os.ReadFile(filepath.Join(root, "app.py"))
	require.NoError(t, err)
	assert.Contains(t, string(updated), "print('hi')")
	assert.Contains(t, string(updated), "def farewell():\n    print('hello')")
}

func TestStrReplacePreservesPermissions(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	script := filepath.Join(root, "deploy.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho staging\n"), 0o755))

	res := tool.StrReplace(ctx, models.StrReplaceRequest{
		FilePath: "deploy.sh",
		OldStr:   "staging",
		NewStr:   "production",
	})
	require.True(t, res.Success, res.Message)

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestStrReplaceNotFound(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("abc\n"), 0o644))

	res := tool.StrReplace(ctx, models.StrReplaceRequest{
		FilePath: "a.txt",
		OldStr:   "zzz",
		NewStr:   "x",
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "zzz")
	assert.Contains(t, res.Message, "not found")
}

func TestStrReplaceMissingFile(t *testing.T) {
	tool, _ := newFilesTool(t)

	res := tool.StrReplace(context.Background(), models.StrReplaceRequest{
		FilePath: "nope.txt",
		OldStr:   "a",
		NewStr:   "b",
	})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "does not exist")
}

func TestFolderLifecycle(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	res := tool.CreateFolder(ctx, models.CreateFolderRequest{FolderPath: "src"})
	require.True(t, res.Success, res.Message)

	info, err := os.Stat(filepath.Join(root, "src"))
	require.NoError(t, err)
	require.True(t, info.IsDir())

	res = tool.CreateFolder(ctx, models.CreateFolderRequest{FolderPath: "src"})
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "already exists")

	res = tool.DeleteFolder(ctx, models.DeleteFolderRequest{FolderPath: "src"})
	require.True(t, res.Success, res.Message)

	res = tool.DeleteFolder(ctx, models.DeleteFolderRequest{FolderPath: "src"})
	require.False(t, res.Success)
}

func TestListFiles(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	res := tool.ListFiles(ctx, models.ListFilesRequest{Path: "missing"})
	require.False(t, res.Success)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	res = tool.ListFiles(ctx, models.ListFilesRequest{Path: "/"})
	require.True(t, res.Success, res.Message)

	entries, ok := res.Data.([]models.DirEntry)
	require.True(t, ok)
	require.Len(t, entries, 2)
}

func TestGetWorkspaceState(t *testing.T) {
	ctx := context.Background()
	tool, root := newFilesTool(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "visible.txt"), []byte("text\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "package-lock.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0x00, 0x01}, 0o644))

	res := tool.GetWorkspaceState(ctx, models.GetWorkspaceStateRequest{})
	require.True(t, res.Success, res.Message)

	state, ok := res.Data.(map[string]snapshot.FileRecord)
	require.True(t, ok)
	require.Len(t, state, 1)
	assert.Equal(t, "text\n", state["visible.txt"].Content)
}

func TestConnectionFailureIsAFailedResult(t *testing.T) {
	conn := sandbox.NewConn(func(context.Context) (sandbox.FileSystem, sandbox.Git, error) {
		return nil, nil, os.ErrPermission
	})
	tool := NewFilesTool(conn, "/workspace")

	res := tool.CreateFile(context.Background(), models.CreateFileRequest{
		FilePath:     "x.txt",
		FileContents: "x",
	})
	require.False(t, res.Success)
	assert.True(t, strings.Contains(res.Message, "connecting to sandbox"))
}
