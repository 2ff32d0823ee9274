// Package sandbox defines the collaborator interfaces the workspace tools
// delegate to: a filesystem capability set and a git capability set. These are
// consumer-defined interfaces; the tools only depend on what they call.
//
// Implementations are expected to serialize conflicting operations at their
// own boundary. The tools impose no ordering between concurrent calls on the
// same path, so the last write observed by the collaborator wins.
package sandbox

import (
	"context"
	"io/fs"
	"time"
)

// FileInfo is the metadata a collaborator reports for a single entry.
type FileInfo struct {
	Name    string
	IsDir   bool
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// FileSystem is the capability set the tools need from the sandbox filesystem.
type FileSystem interface {
	// GetFileInfo returns metadata for a path, failing if it does not exist.
	GetFileInfo(ctx context.Context, path string) (FileInfo, error)

	// ListFiles returns the entries directly under a directory.
	ListFiles(ctx context.Context, path string) ([]FileInfo, error)

	// DownloadFile returns the full content of a file.
	DownloadFile(ctx context.Context, path string) ([]byte, error)

	// UploadFile writes content to a file, replacing any existing content.
	UploadFile(ctx context.Context, path string, content []byte) error

	// SetPermissions changes the mode of a file.
	SetPermissions(ctx context.Context, path string, mode fs.FileMode) error

	// CreateFolder creates a directory, including missing parents.
	CreateFolder(ctx context.Context, path string, mode fs.FileMode) error

	// DeleteFile removes a single file.
	DeleteFile(ctx context.Context, path string) error

	// DeleteFolder removes a directory and its contents.
	DeleteFolder(ctx context.Context, path string) error
}

// CloneOptions carries the arguments for a repository clone.
type CloneOptions struct {
	URL       string
	Path      string
	Branch    string
	AuthToken string
}

// Git is the capability set the tools need from the sandbox git layer.
// Repository paths are absolute paths under the workspace root; file paths are
// relative to the repository.
type Git interface {
	Clone(ctx context.Context, opts CloneOptions) error
	Status(ctx context.Context, path string) (string, error)
	Add(ctx context.Context, path, filePath string) error
	Commit(ctx context.Context, path, message string) error
	Push(ctx context.Context, path, branch string) error
	Pull(ctx context.Context, path, branch string) error
	Fetch(ctx context.Context, path string) error
	Merge(ctx context.Context, path, branch string) error
	Checkout(ctx context.Context, path, branch string) error
	CreateBranch(ctx context.Context, path, branch string) error
}
