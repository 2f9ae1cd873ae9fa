package nav

import (
	"regexp"
	"strings"
)

// Style describes how a navigation sequence is laid out in a file.
type Style struct {
	// Indent is the number of spaces before each top-level "-".
	Indent int
	// IndentedChildren places nested entries two spaces deeper than their
	// key instead of at the key's column.
	IndentedChildren bool
}

// DetectStyle reports the layout used by the lines of an existing
// navigation section. Lines may keep their line endings. Sections without
// nested sequences get the compact layout Jekyll writes.
func DetectStyle(lines []string) Style {
	var st Style
	var body []string
	for _, line := range lines {
		text := strings.TrimRight(line, "\r\n")
		if isBlankOrComment(text) {
			continue
		}
		body = append(body, text)
	}
	if len(body) == 0 {
		return st
	}
	if first := body[0]; strings.HasPrefix(strings.TrimLeft(first, " "), "-") {
		st.Indent = indentOf(first)
	}
	for i := 0; i+1 < len(body); i++ {
		kc, ok := emptyKeyColumn(body[i])
		if !ok || !isSequenceItem(body[i+1]) || indentOf(body[i+1]) < kc {
			continue
		}
		st.IndentedChildren = indentOf(body[i+1]) > kc
		break
	}
	return st
}

var blockScalarHeader = regexp.MustCompile(`(?:^|: )[|>][1-9+-]*$`)

// compactSequences moves block sequences nested under a mapping key to the
// key's column, the layout Psych and most hand-written Jekyll configs use.
// out is yaml.v3 output, which always indents such sequences by two.
func compactSequences(out string) string {
	lines := strings.SplitAfter(out, "\n")
	shift := make([]int, len(lines))

	for i := 0; i < len(lines); i++ {
		text := strings.TrimRight(lines[i], "\n")
		if text == "" {
			continue
		}
		kc, rest := stripDashes(text)
		if blockScalarHeader.MatchString(rest) {
			// Scalar content is never structure.
			limit := kc
			if strings.HasPrefix(rest, "|") || strings.HasPrefix(rest, ">") {
				limit = kc - 2
			}
			for i+1 < len(lines) && (strings.TrimSpace(lines[i+1]) == "" || indentOf(lines[i+1]) > limit) {
				i++
			}
			continue
		}
		if _, ok := emptyKeyColumn(text); !ok {
			continue
		}
		next := i + 1
		if next >= len(lines) || !isSequenceItem(lines[next]) || indentOf(lines[next]) != kc+2 {
			continue
		}
		for j := next; j < len(lines); j++ {
			if t := strings.TrimRight(lines[j], "\n"); t != "" && indentOf(t) <= kc {
				break
			}
			shift[j] += 2
		}
	}

	var b strings.Builder
	b.Grow(len(out))
	for i, line := range lines {
		if n := shift[i]; n > 0 && strings.HasPrefix(line, strings.Repeat(" ", n)) {
			line = line[n:]
		}
		b.WriteString(line)
	}
	return b.String()
}

// indentLines prefixes every non-empty line with n spaces.
func indentLines(out string, n int) string {
	if n <= 0 {
		return out
	}
	pad := strings.Repeat(" ", n)
	lines := strings.SplitAfter(out, "\n")
	var b strings.Builder
	b.Grow(len(out) + len(lines)*n)
	for _, line := range lines {
		if strings.TrimRight(line, "\n") != "" {
			b.WriteString(pad)
		}
		b.WriteString(line)
	}
	return b.String()
}

// stripDashes returns the column of the first character after any leading
// "- " sequence indicators on the line, and the rest of the line.
func stripDashes(text string) (int, string) {
	col := indentOf(text)
	rest := text[col:]
	for strings.HasPrefix(rest, "- ") {
		rest = rest[2:]
		col += 2
	}
	return col, rest
}

// emptyKeyColumn reports the column of a mapping key written without an
// inline value, such as "children:" or "- children:".
func emptyKeyColumn(text string) (int, bool) {
	col, rest := stripDashes(text)
	if strings.HasPrefix(rest, "#") || !strings.HasSuffix(rest, ":") || len(rest) < 2 {
		return 0, false
	}
	return col, true
}

func isSequenceItem(line string) bool {
	t := strings.TrimSpace(line)
	return t == "-" || strings.HasPrefix(t, "- ")
}

func isBlankOrComment(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || strings.HasPrefix(t, "#")
}

func indentOf(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}
