// Package tools implements the workspace operation facade: file, folder and
// git commands composed from path normalization, the exclusion rules, the
// patch engine and the external sandbox collaborators. Every operation returns
// a tagged models.Result; errors never escape the operation boundary.
package tools

import (
	"context"
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/jmallory/sandkit/internal/sandbox"
	"github.com/jmallory/sandkit/internal/tools/models"
	"github.com/jmallory/sandkit/internal/workspace/patch"
	"github.com/jmallory/sandkit/internal/workspace/pathutil"
	"github.com/jmallory/sandkit/internal/workspace/snapshot"
)

const defaultFilePerm = fs.FileMode(0o644)

// FilesTool executes file and folder operations against the sandbox
// filesystem. All paths are interpreted relative to the workspace root.
type FilesTool struct {
	conn *sandbox.Conn
	root string
}

// NewFilesTool returns a FilesTool over the given connection and workspace root.
func NewFilesTool(conn *sandbox.Conn, workspaceRoot string) *FilesTool {
	return &FilesTool{
		conn: conn,
		root: strings.TrimSuffix(workspaceRoot, "/"),
	}
}

// CreateFile creates a new file with the provided contents. It fails when the
// target already exists; missing parent directories are created.
func (t *FilesTool) CreateFile(ctx context.Context, req models.CreateFileRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.FilePath)
	if res != nil {
		return *res
	}

	if t.exists(ctx, full) {
		return models.Failf("File '%s' already exists. Use full_file_rewrite to modify existing files.", rel)
	}

	perm, err := parsePerm(req.Permissions)
	if err != nil {
		return models.Failf("Error creating file: %v", err)
	}

	if parent := parentDir(full); parent != "" && parent != t.root {
		if err := t.conn.FS().CreateFolder(ctx, parent, 0o755); err != nil {
			return models.Failf("Error creating file: %v", err)
		}
	}

	if err := t.conn.FS().UploadFile(ctx, full, []byte(req.FileContents)); err != nil {
		return models.Failf("Error creating file: %v", err)
	}
	if err := t.conn.FS().SetPermissions(ctx, full, perm); err != nil {
		return models.Failf("Error creating file: %v", err)
	}

	return models.Okf("File '%s' created successfully.", rel)
}

// FullFileRewrite replaces the entire content of an existing file.
func (t *FilesTool) FullFileRewrite(ctx context.Context, req models.FullFileRewriteRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.FilePath)
	if res != nil {
		return *res
	}

	if !t.exists(ctx, full) {
		return models.Failf("File '%s' does not exist. Use create_file to create a new file.", rel)
	}

	perm, err := parsePerm(req.Permissions)
	if err != nil {
		return models.Failf("Error rewriting file: %v", err)
	}

	if err := t.conn.FS().UploadFile(ctx, full, []byte(req.FileContents)); err != nil {
		return models.Failf("Error rewriting file: %v", err)
	}
	if err := t.conn.FS().SetPermissions(ctx, full, perm); err != nil {
		return models.Failf("Error rewriting file: %v", err)
	}

	return models.Okf("File '%s' completely rewritten successfully.", rel)
}

// DeleteFile removes an existing file.
func (t *FilesTool) DeleteFile(ctx context.Context, req models.DeleteFileRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.FilePath)
	if res != nil {
		return *res
	}

	if !t.exists(ctx, full) {
		return models.Failf("File '%s' does not exist", rel)
	}

	if err := t.conn.FS().DeleteFile(ctx, full); err != nil {
		return models.Failf("Error deleting file: %v", err)
	}
	return models.Okf("File '%s' deleted successfully.", rel)
}

// StrReplace substitutes a unique occurrence of old_str in the file with
// new_str. The success payload carries a context snippet around the edit.
func (t *FilesTool) StrReplace(ctx context.Context, req models.StrReplaceRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.FilePath)
	if res != nil {
		return *res
	}

	if !t.exists(ctx, full) {
		return models.Failf("File '%s' does not exist", rel)
	}

	content, err := t.conn.FS().DownloadFile(ctx, full)
	if err != nil {
		return models.Failf("Error replacing string: %v", err)
	}

	result, err := patch.ReplaceUnique(string(content), req.OldStr, req.NewStr)
	if err != nil {
		var notFound *patch.NotFoundError
		var ambiguous *patch.AmbiguousError
		switch {
		case errors.As(err, &notFound):
			return models.Failf("String '%s' not found in file", notFound.Search)
		case errors.As(err, &ambiguous):
			return models.Failf("Multiple occurrences found in lines %v. Please ensure string is unique", ambiguous.Lines)
		default:
			return models.Failf("Error replacing string: %v", err)
		}
	}

	if err := t.conn.FS().UploadFile(ctx, full, []byte(result.NewContent)); err != nil {
		return models.Failf("Error replacing string: %v", err)
	}

	return models.OkWithData("Replacement successful.", models.StrReplaceData{
		Snippet:  result.Snippet,
		EditLine: result.EditLine,
	})
}

// CreateFolder creates a new folder, failing when the target already exists.
func (t *FilesTool) CreateFolder(ctx context.Context, req models.CreateFolderRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.FolderPath)
	if res != nil {
		return *res
	}

	if t.exists(ctx, full) {
		return models.Failf("Folder '%s' already exists", rel)
	}

	if err := t.conn.FS().CreateFolder(ctx, full, 0o755); err != nil {
		return models.Failf("Error creating folder: %v", err)
	}
	return models.Okf("Folder '%s' created successfully.", rel)
}

// DeleteFolder removes an existing folder and its contents.
func (t *FilesTool) DeleteFolder(ctx context.Context, req models.DeleteFolderRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.FolderPath)
	if res != nil {
		return *res
	}

	if !t.exists(ctx, full) {
		return models.Failf("Folder '%s' does not exist", rel)
	}

	if err := t.conn.FS().DeleteFolder(ctx, full); err != nil {
		return models.Failf("Error deleting folder: %v", err)
	}
	return models.Okf("Folder '%s' deleted successfully.", rel)
}

// ListFiles lists the entries directly under a directory.
func (t *FilesTool) ListFiles(ctx context.Context, req models.ListFilesRequest) models.Result {
	rel, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if !t.exists(ctx, full) {
		return models.Failf("Path '%s' does not exist", rel)
	}

	infos, err := t.conn.FS().ListFiles(ctx, full)
	if err != nil {
		return models.Failf("Error listing files: %v", err)
	}

	entries := make([]models.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, models.DirEntry{
			Name:     info.Name,
			IsDir:    info.IsDir,
			Size:     info.Size,
			Modified: info.ModTime,
		})
	}

	return models.OkWithData(displayListMessage(rel, len(entries)), entries)
}

// GetWorkspaceState builds a snapshot of all visible text files under the
// workspace root.
func (t *FilesTool) GetWorkspaceState(ctx context.Context, _ models.GetWorkspaceStateRequest) models.Result {
	if err := t.conn.Ensure(ctx); err != nil {
		return models.Failf("Error connecting to sandbox: %v", err)
	}

	state, err := snapshot.NewBuilder(t.conn.FS(), t.root).Build(ctx)
	if err != nil {
		return models.Failf("Error getting workspace state: %v", err)
	}
	return models.OkWithData("Workspace state retrieved successfully.", state)
}

// resolve runs the shared operation preamble: ensure the connection, then
// normalize the supplied path. A non-nil Result short-circuits the operation.
func (t *FilesTool) resolve(ctx context.Context, rawPath string) (rel, full string, failure *models.Result) {
	if err := t.conn.Ensure(ctx); err != nil {
		res := models.Failf("Error connecting to sandbox: %v", err)
		return "", "", &res
	}

	rel, err := pathutil.Clean(rawPath, t.root)
	if err != nil {
		res := models.Failf("Invalid path: %v", err)
		return "", "", &res
	}
	return rel, t.fullPath(rel), nil
}

func (t *FilesTool) fullPath(rel string) string {
	if rel == "" {
		return t.root
	}
	return t.root + "/" + rel
}

// exists probes the collaborator's file-info endpoint; any error counts as
// "does not exist".
func (t *FilesTool) exists(ctx context.Context, full string) bool {
	_, err := t.conn.FS().GetFileInfo(ctx, full)
	return err == nil
}

func parentDir(full string) string {
	idx := strings.LastIndex(full, "/")
	if idx <= 0 {
		return ""
	}
	return full[:idx]
}

// parsePerm parses an octal permission string such as "644", defaulting when
// empty and masking to the standard permission bits.
func parsePerm(s string) (fs.FileMode, error) {
	if s == "" {
		return defaultFilePerm, nil
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil {
		return 0, errors.New("invalid permissions: expected octal string such as '644'")
	}
	return fs.FileMode(n) & 0o777, nil
}

func displayListMessage(rel string, count int) string {
	name := rel
	if name == "" {
		name = "."
	}
	return "Files in '" + name + "': " + strconv.Itoa(count) + " entries"
}
