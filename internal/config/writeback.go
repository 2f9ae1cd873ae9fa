package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	derrors "git.home.luguber.info/inful/docnav/internal/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

const navigationKey = "navigation:"

// ReplaceNavigation replaces the `navigation:` section of a configuration
// file's content with tree. A section line is one starting with a space or
// a '-'; blank and comment lines inside the section are dropped only when
// more section lines follow them. All other lines are kept verbatim. The
// new section follows the layout of the one it replaces, and a section
// that already holds tree is left exactly as written. When no section
// exists the content is returned unchanged and found is false.
func ReplaceNavigation(content []byte, tree nav.Tree) (out []byte, found bool, err error) {
	eol := "\n"
	if bytes.Contains(content, []byte("\r\n")) {
		eol = "\r\n"
	}

	lines := strings.SplitAfter(string(content), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	start, marker := -1, false
	for i, line := range lines {
		if m, ok := markerLine(strings.TrimRight(line, "\r\n")); ok {
			start, marker = i, m
			break
		}
	}
	if start < 0 {
		return content, false, nil
	}
	end := start + 1
	for j := start + 1; j < len(lines); j++ {
		text := strings.TrimRight(lines[j], "\r\n")
		if isSectionLine(text) {
			end = j + 1
			continue
		}
		if !isFillerLine(text) {
			break
		}
	}

	old := lines[start+1 : end]
	style := nav.DetectStyle(old)
	encoded, err := tree.EncodeStyle(style)
	if err != nil {
		return nil, true, err
	}
	if marker && holdsTree(old, encoded, style) {
		return content, true, nil
	}

	section := string(encoded)
	if eol != "\n" {
		section = strings.ReplaceAll(section, "\n", eol)
	}

	var b strings.Builder
	b.Grow(len(content) + len(section))
	for _, line := range lines[:start] {
		b.WriteString(line)
	}
	if marker {
		b.WriteString(lines[start])
		if !strings.HasSuffix(lines[start], "\n") {
			b.WriteString(eol)
		}
	} else {
		b.WriteString(navigationKey + eol)
	}
	b.WriteString(section)
	for _, line := range lines[end:] {
		b.WriteString(line)
	}
	return []byte(b.String()), true, nil
}

// holdsTree reports whether the section lines decode to a tree that
// encodes exactly as encoded.
func holdsTree(section []string, encoded []byte, style nav.Style) bool {
	text := strings.ReplaceAll(strings.Join(section, ""), "\r\n", "\n")
	current, err := nav.Decode([]byte(text))
	if err != nil {
		return false
	}
	again, err := current.EncodeStyle(style)
	return err == nil && bytes.Equal(again, encoded)
}

// markerLine reports whether text starts the navigation section. marker is
// true when the line carries no inline value and can be kept as written.
func markerLine(text string) (marker, ok bool) {
	rest, ok := strings.CutPrefix(text, navigationKey)
	if !ok {
		return false, false
	}
	trimmed := strings.TrimSpace(rest)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return false, false
	}
	return trimmed == "" || strings.HasPrefix(trimmed, "#"), true
}

func isSectionLine(text string) bool {
	return strings.HasPrefix(text, " ") || strings.HasPrefix(text, "-")
}

func isFillerLine(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// RenderNavigation returns the content of the configuration file at path
// with its navigation section replaced by tree. changed is false when the
// file has no navigation section or already holds tree.
func RenderNavigation(path string, tree nav.Tree) (out []byte, changed bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, derrors.FileSystemError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	out, found, err := ReplaceNavigation(content, tree)
	if err != nil {
		return nil, false, derrors.InternalError("failed to render navigation").WithCause(err).Build()
	}
	return out, found && !bytes.Equal(out, content), nil
}

// WriteNavigation replaces the navigation section of the configuration
// file at path with tree. The file is replaced atomically and only when its
// content changes; changed reports whether it was written.
func WriteNavigation(path string, tree nav.Tree) (changed bool, err error) {
	out, changed, err := RenderNavigation(path, tree)
	if err != nil || !changed {
		return false, err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(out)); err != nil {
		return false, derrors.FileSystemError(fmt.Sprintf("failed to write %s", path)).
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return true, nil
}
