// Package local implements the sandbox filesystem collaborator against the
// local OS. It is the in-process stand-in for a remote sandbox: the CLI, the
// examples and the tests all run against it, and a remote transport plugs in
// behind the same interface.
package local

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmallory/sandkit/internal/sandbox"
)

// DefaultMaxFileSize bounds single-file downloads (20 MB).
const DefaultMaxFileSize = 20 * 1024 * 1024

// FileSystem is an OS-backed sandbox.FileSystem.
type FileSystem struct {
	// MaxFileSize caps DownloadFile; zero means DefaultMaxFileSize.
	MaxFileSize int64
}

// NewFileSystem returns a FileSystem with the given download size cap.
func NewFileSystem(maxFileSize int64) *FileSystem {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &FileSystem{MaxFileSize: maxFileSize}
}

func (f *FileSystem) GetFileInfo(_ context.Context, path string) (sandbox.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return sandbox.FileInfo{}, err
	}
	return toFileInfo(info), nil
}

func (f *FileSystem) ListFiles(_ context.Context, path string) ([]sandbox.FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]sandbox.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}
		infos = append(infos, toFileInfo(info))
	}
	return infos, nil
}

func (f *FileSystem) DownloadFile(_ context.Context, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > f.MaxFileSize {
		return nil, fmt.Errorf("file %s exceeds size limit (%d > %d bytes)", path, info.Size(), f.MaxFileSize)
	}
	return os.ReadFile(path)
}

// UploadFile writes content atomically using a temp file in the target
// directory followed by a rename, so a crash mid-write leaves the original
// intact. An existing target keeps its permissions across the rewrite.
func (f *FileSystem) UploadFile(_ context.Context, path string, content []byte) error {
	dir := filepath.Dir(path)

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	needsCleanup := true
	defer func() {
		if needsCleanup {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	needsCleanup = false

	return nil
}

func (f *FileSystem) SetPermissions(_ context.Context, path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}

func (f *FileSystem) CreateFolder(_ context.Context, path string, mode fs.FileMode) error {
	return os.MkdirAll(path, mode)
}

func (f *FileSystem) DeleteFile(_ context.Context, path string) error {
	return os.Remove(path)
}

func (f *FileSystem) DeleteFolder(_ context.Context, path string) error {
	return os.RemoveAll(path)
}

func toFileInfo(info fs.FileInfo) sandbox.FileInfo {
	return sandbox.FileInfo{
		Name:    info.Name(),
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
}
