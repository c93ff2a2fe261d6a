package changes

import (
	"strings"
	"unicode"

	cmerrors "github.com/relicta-tech/commit-msg/internal/errors"
)

// Normalize cleans up a raw commit message and validates its header.
//
// Comment lines are dropped, trailing whitespace is trimmed, leading and
// trailing blank lines are removed, an accidental "Feat:"-style header is
// lowercased, and a blank line is forced between the header and whatever
// follows it. The result always ends with exactly one newline.
//
// Normalize is pure and idempotent: feeding its output back in returns the
// same text.
func Normalize(raw string) (string, error) {
	const op = "changes.Normalize"

	lines := make([]string, 0, strings.Count(raw, "\n")+1)
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if isComment(line) {
			continue
		}
		lines = append(lines, strings.TrimRightFunc(line, unicode.IsSpace))
	}

	lines = trimBlankLines(lines)
	if len(lines) == 0 {
		return "", cmerrors.E(cmerrors.KindEmpty, op, ErrEmptyMessage.Message)
	}

	header := strings.TrimSpace(lines[0])
	if repaired, ok := repairHeader(header); ok {
		header = repaired
		lines[0] = repaired
	}

	if _, ok := headerType(header); !ok {
		return "", cmerrors.E(cmerrors.KindInvalidFormat, op, ErrInvalidFormat.Message).
			WithDetail("header", header)
	}

	if len(lines) > 1 && lines[1] != "" {
		lines = append(lines[:1], append([]string{""}, lines[1:]...)...)
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// isComment reports whether the first non-space character of line is '#'.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "#")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// repairHeader lowercases a capitalized type prefix such as "Feat:" or
// "Fix(". Only a single leading capital is repaired; "FEAT:" is left alone.
func repairHeader(header string) (string, bool) {
	for _, t := range commitTypes {
		capitalized := t.Capitalized()
		if strings.HasPrefix(header, capitalized+":") || strings.HasPrefix(header, capitalized+"(") {
			return string(t) + header[len(capitalized):], true
		}
	}
	return header, false
}

// headerType returns the first type whose "type:" or "type(" prefix starts header.
func headerType(header string) (CommitType, bool) {
	for _, t := range commitTypes {
		if strings.HasPrefix(header, string(t)+":") || strings.HasPrefix(header, string(t)+"(") {
			return t, true
		}
	}
	return "", false
}
