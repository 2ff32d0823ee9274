// Package exclude decides which workspace paths are visible to whole-workspace
// scans. The rule tables are fixed at compile time; matching is exact,
// case-sensitive string comparison per path component, with no glob or regex
// semantics.
package exclude

import (
	"path"
	"strings"
)

// excludedFiles are exact filenames hidden from workspace scans.
var excludedFiles = map[string]struct{}{
	".DS_Store":            {},
	".gitignore":           {},
	".env":                 {},
	"package-lock.json":    {},
	"yarn.lock":            {},
	"pnpm-lock.yaml":       {},
	"postcss.config.js":    {},
	"postcss.config.mjs":   {},
	"jsconfig.json":        {},
	"tsconfig.json":        {},
	"tsconfig.tsbuildinfo": {},
	"components.json":      {},
}

// excludedDirs are directory name components hidden wherever they appear in a path.
var excludedDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".next":        {},
	"dist":         {},
	"build":        {},
	"__pycache__":  {},
	".venv":        {},
	"vendor":       {},
	"target":       {},
}

// excludedExts are file extensions for binary, media and compiled artifacts.
var excludedExts = map[string]struct{}{
	".ico":   {},
	".svg":   {},
	".png":   {},
	".jpg":   {},
	".jpeg":  {},
	".gif":   {},
	".bmp":   {},
	".tiff":  {},
	".webp":  {},
	".pdf":   {},
	".db":    {},
	".sql":   {},
	".zip":   {},
	".tar":   {},
	".gz":    {},
	".exe":   {},
	".dll":   {},
	".so":    {},
	".dylib": {},
	".bin":   {},
	".woff":  {},
	".woff2": {},
	".ttf":   {},
	".pyc":   {},
	".class": {},
	".o":     {},
	".a":     {},
}

// IsExcluded reports whether a workspace-relative path is hidden from
// whole-workspace scans: the final component matches an excluded filename, any
// component matches an excluded directory name, or the extension matches an
// excluded extension.
func IsExcluded(relPath string) bool {
	if relPath == "" {
		return false
	}

	parts := splitPath(relPath)
	if len(parts) == 0 {
		return false
	}

	name := parts[len(parts)-1]
	if _, ok := excludedFiles[name]; ok {
		return true
	}

	for _, part := range parts {
		if _, ok := excludedDirs[part]; ok {
			return true
		}
	}

	if ext := path.Ext(name); ext != "" {
		if _, ok := excludedExts[ext]; ok {
			return true
		}
	}

	return false
}

// splitPath splits a relative path into components, dropping empty and "."
// segments.
func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
