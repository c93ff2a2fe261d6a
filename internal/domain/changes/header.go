package changes

import (
	"regexp"
	"strings"
)

// Header is the parsed first line of a commit message.
type Header struct {
	Type     CommitType `json:"type"`
	Scope    string     `json:"scope,omitempty"`
	Breaking bool       `json:"breaking,omitempty"`
	Subject  string     `json:"subject"`
}

// Matches: type(scope)!: subject, type!: subject, type(scope): subject, type: subject
var headerRegex = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?:\s*(.*)$`)

// ParseHeader splits a header line into its components.
// It returns false when the line is not a header for an accepted type.
func ParseHeader(line string) (Header, bool) {
	matches := headerRegex.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return Header{}, false
	}

	t, ok := ParseCommitType(matches[1])
	if !ok {
		return Header{}, false
	}

	return Header{
		Type:     t,
		Scope:    matches[2],
		Breaking: matches[3] == "!",
		Subject:  strings.TrimSpace(matches[4]),
	}, true
}

// String returns the canonical header text.
func (h Header) String() string {
	var sb strings.Builder
	sb.Grow(len(h.Type) + len(h.Scope) + len(h.Subject) + 5)
	sb.WriteString(string(h.Type))
	if h.Scope != "" {
		sb.WriteString("(")
		sb.WriteString(h.Scope)
		sb.WriteString(")")
	}
	if h.Breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": ")
	sb.WriteString(h.Subject)
	return sb.String()
}
