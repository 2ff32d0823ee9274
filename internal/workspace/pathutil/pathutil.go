// Package pathutil normalizes caller-supplied paths into paths relative to the
// workspace root. Normalization is a pure string transformation: it never
// touches the filesystem and never resolves "." or ".." segments.
package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidPath is returned for input that cannot be normalized at all.
// Anything non-empty is normalized best-effort rather than rejected.
var ErrInvalidPath = errors.New("path must be a non-empty string")

// Clean normalizes raw into a path relative to workspaceRoot.
//
// A leading "/" is stripped, and a duplicated workspace-root prefix is
// collapsed so that "/workspace/src/x", "workspace/src/x" and "src/x" all
// resolve to the same relative path. Clean is idempotent: applying it to an
// already-normalized path returns the path unchanged.
func Clean(raw, workspaceRoot string) (string, error) {
	if raw == "" {
		return "", ErrInvalidPath
	}

	p := strings.TrimSpace(raw)
	root := strings.TrimSuffix(workspaceRoot, "/")
	rootName := strings.TrimPrefix(root, "/")

	for {
		switch {
		case root != "" && p == root:
			p = ""
		case root != "" && strings.HasPrefix(p, root+"/"):
			p = p[len(root)+1:]
		case rootName != "" && p == rootName:
			p = ""
		case rootName != "" && strings.HasPrefix(p, rootName+"/"):
			p = p[len(rootName)+1:]
		case strings.HasPrefix(p, "/"):
			p = strings.TrimPrefix(p, "/")
		default:
			return p, nil
		}
	}
}
