// Package patch implements unique-match, context-aware text substitution. It
// operates entirely on in-memory text and has no knowledge of the filesystem.
package patch

import (
	"fmt"
	"strings"
)

const (
	// TabStop is the column width used when expanding horizontal tabs.
	TabStop = 8
	// SnippetLines is the number of context lines shown around an edit.
	SnippetLines = 4
)

// Result is the outcome of a successful replacement. It has no identity of its
// own; callers consume it immediately to build a response.
type Result struct {
	// NewContent is the full content after the substitution, with tab runs
	// normalized to spaces.
	NewContent string
	// EditLine is the 0-based line index where the replaced text starts.
	EditLine int
	// Snippet is a bounded window of NewContent around the edit.
	Snippet string
}

// NotFoundError is returned when the search string does not occur in the content.
type NotFoundError struct {
	Search string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("string %q not found in file", e.Search)
}

// AmbiguousError is returned when the search string occurs more than once.
// Lines holds the 1-based numbers of every line containing the search string.
type AmbiguousError struct {
	Search string
	Lines  []int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple occurrences of %q found on lines %v, ensure the string is unique", e.Search, e.Lines)
}

// ReplaceUnique substitutes the sole occurrence of oldStr in content with
// newStr. Tabs in all three inputs are expanded to TabStop-column runs of
// spaces before matching, so a tab in the stored file and the equivalent
// spaces in the caller's literal compare equal.
//
// Zero occurrences yield a *NotFoundError, more than one a *AmbiguousError.
func ReplaceUnique(content, oldStr, newStr string) (*Result, error) {
	old := ExpandTabs(oldStr)
	if old == "" {
		return nil, &NotFoundError{Search: old}
	}
	repl := ExpandTabs(newStr)
	text := ExpandTabs(content)

	switch n := strings.Count(text, old); {
	case n == 0:
		return nil, &NotFoundError{Search: old}
	case n > 1:
		return nil, &AmbiguousError{Search: old, Lines: matchingLines(text, old)}
	}

	idx := strings.Index(text, old)
	newContent := text[:idx] + repl + text[idx+len(old):]
	editLine := strings.Count(text[:idx], "\n")

	return &Result{
		NewContent: newContent,
		EditLine:   editLine,
		Snippet:    snippet(newContent, editLine, strings.Count(repl, "\n")),
	}, nil
}

// matchingLines returns the 1-based numbers of lines containing s. A line
// matches when s appears anywhere in it, not only on exact equality.
func matchingLines(text, s string) []int {
	var lines []int
	for i, line := range strings.Split(text, "\n") {
		if strings.Contains(line, s) {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// snippet slices SnippetLines of context either side of the edit, extended by
// the number of newlines the replacement introduced, clamped to the content.
func snippet(content string, editLine, replNewlines int) string {
	lines := strings.Split(content, "\n")

	start := editLine - SnippetLines
	if start < 0 {
		start = 0
	}
	end := editLine + SnippetLines + replNewlines
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	return strings.Join(lines[start:end+1], "\n")
}

// ExpandTabs replaces each tab with enough spaces to reach the next TabStop
// column. The column counter resets on newlines and carriage returns.
func ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := TabStop - col%TabStop
			for i := 0; i < n; i++ {
				b.WriteByte(' ')
			}
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
