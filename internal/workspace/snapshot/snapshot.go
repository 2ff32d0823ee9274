// Package snapshot reconstructs an in-memory, point-in-time view of the
// visible files in the workspace. Excluded, ignored, binary and individually
// unreadable files are skipped without failing the snapshot as a whole.
package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sirupsen/logrus"

	"github.com/jmallory/sandkit/internal/sandbox"
	"github.com/jmallory/sandkit/internal/workspace/exclude"
)

// binarySampleSize is how many bytes are inspected for null bytes.
const binarySampleSize = 4096

// FileRecord is a single snapshot entry. A record is either fully stored or
// the file is skipped; no partial entries exist.
type FileRecord struct {
	Content  string    `json:"content"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Builder assembles workspace snapshots through the filesystem collaborator.
type Builder struct {
	fs   sandbox.FileSystem
	root string
	log  *logrus.Entry
}

// NewBuilder returns a Builder for the workspace rooted at root.
func NewBuilder(fs sandbox.FileSystem, root string) *Builder {
	return &Builder{
		fs:   fs,
		root: strings.TrimSuffix(root, "/"),
		log:  logrus.WithField("component", "snapshot"),
	}
}

// Build lists the workspace root once and returns a mapping of relative path
// to FileRecord for every visible text file. Directories, excluded paths and
// paths matched by a workspace .gitignore are hidden; files that fail to
// download or do not decode as text are skipped with a logged warning.
//
// A failing top-level listing is reported as an error so callers can tell a
// genuinely empty workspace from a failed scan.
func (b *Builder) Build(ctx context.Context) (map[string]FileRecord, error) {
	entries, err := b.fs.ListFiles(ctx, b.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace files: %w", err)
	}

	matcher := b.loadGitignore(ctx)

	state := make(map[string]FileRecord)
	for _, entry := range entries {
		rel := entry.Name
		if entry.IsDir || exclude.IsExcluded(rel) {
			continue
		}
		if matcher != nil && matcher.Match(splitPath(rel), false) {
			continue
		}

		content, err := b.fs.DownloadFile(ctx, b.root+"/"+rel)
		if err != nil {
			b.log.WithError(err).Warnf("skipping unreadable file %s", rel)
			continue
		}
		if !isText(content) {
			b.log.Debugf("skipping binary file %s", rel)
			continue
		}

		state[rel] = FileRecord{
			Content:  string(content),
			IsDir:    entry.IsDir,
			Size:     entry.Size,
			Modified: entry.ModTime,
		}
	}

	return state, nil
}

// loadGitignore parses the workspace's top-level .gitignore, if any.
// A missing or unreadable .gitignore simply disables the ignore layer.
func (b *Builder) loadGitignore(ctx context.Context) gitignore.Matcher {
	content, err := b.fs.DownloadFile(ctx, b.root+"/.gitignore")
	if err != nil {
		return nil
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewMatcher(patterns)
}

// isText reports whether content decodes as UTF-8 text with no null bytes in
// the sample. Stored records are always valid UTF-8; UTF-16/32 files fail the
// null-byte check and are skipped rather than stored untranscoded.
func isText(content []byte) bool {
	sample := content
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	for _, c := range sample {
		if c == 0 {
			return false
		}
	}
	return utf8.Valid(content)
}

func splitPath(p string) []string {
	var segments []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
