package ngdoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxIndent = 9999

// Trim removes the common indentation of text and drops blank leading and
// trailing lines. An unindented first line of a multi-line text does not take
// part in computing the common indentation.
func Trim(text string) string {
	lines := strings.Split(text, "\n")
	minIndent := maxIndent
	ignoreFirst := len(lines) > 1 && !strings.HasPrefix(lines[0], " ")

	for i, line := range lines {
		if i == 0 && ignoreFirst {
			continue
		}
		indent := leadingSpace(line)
		if indent > 0 || minIndent == maxIndent {
			minIndent = min(minIndent, indent)
		}
	}

	for i, line := range lines {
		lines[i] = stripIndent(line, minIndent)
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// leadingSpace counts the whitespace runes at the start of line
func leadingSpace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// stripIndent removes up to n leading whitespace runes
func stripIndent(line string, n int) string {
	for n > 0 && line != "" {
		r, size := utf8.DecodeRuneInString(line)
		if !unicode.IsSpace(r) {
			break
		}
		line = line[size:]
		n--
	}
	return line
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentCode prefixes every line of text with spaces
func indentCode(text string, spaces int) string {
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
