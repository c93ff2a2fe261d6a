// Package changes provides the commit message domain: the accepted commit
// types, header parsing and message normalization.
package changes

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CommitType represents the type of a conventional commit.
type CommitType string

// Accepted commit types. The set is closed.
const (
	CommitTypeBuild    CommitType = "build"
	CommitTypeChore    CommitType = "chore"
	CommitTypeCI       CommitType = "ci"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypePerf     CommitType = "perf"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypeRevert   CommitType = "revert"
	CommitTypeStyle    CommitType = "style"
	CommitTypeTest     CommitType = "test"
)

// commitTypes is the search order for header repair and validation.
// The first match wins, so the order must stay fixed.
var commitTypes = [...]CommitType{
	CommitTypeBuild,
	CommitTypeChore,
	CommitTypeCI,
	CommitTypeDocs,
	CommitTypeFeat,
	CommitTypeFix,
	CommitTypePerf,
	CommitTypeRefactor,
	CommitTypeRevert,
	CommitTypeStyle,
	CommitTypeTest,
}

// CommitTypes returns all accepted commit types in search order.
func CommitTypes() []CommitType {
	out := make([]CommitType, len(commitTypes))
	copy(out, commitTypes[:])
	return out
}

// IsValid returns true if the commit type is a recognized type.
func (t CommitType) IsValid() bool {
	switch t {
	case CommitTypeBuild, CommitTypeChore, CommitTypeCI, CommitTypeDocs,
		CommitTypeFeat, CommitTypeFix, CommitTypePerf, CommitTypeRefactor,
		CommitTypeRevert, CommitTypeStyle, CommitTypeTest:
		return true
	default:
		return false
	}
}

// String returns the string representation of the commit type.
func (t CommitType) String() string {
	return string(t)
}

// Capitalized returns the type with its first letter in upper case, e.g. "Feat".
func (t CommitType) Capitalized() string {
	return Capitalize(string(t))
}

// Description returns a human-readable description of the commit type.
func (t CommitType) Description() string {
	switch t {
	case CommitTypeBuild:
		return "Changes that affect the build system or external dependencies"
	case CommitTypeChore:
		return "Other changes that don't modify src or test files"
	case CommitTypeCI:
		return "Changes to CI configuration files and scripts"
	case CommitTypeDocs:
		return "Documentation only changes"
	case CommitTypeFeat:
		return "A new feature"
	case CommitTypeFix:
		return "A bug fix"
	case CommitTypePerf:
		return "A code change that improves performance"
	case CommitTypeRefactor:
		return "A code change that neither fixes a bug nor adds a feature"
	case CommitTypeRevert:
		return "Reverts a previous commit"
	case CommitTypeStyle:
		return "Changes that do not affect the meaning of the code"
	case CommitTypeTest:
		return "Adding missing tests or correcting existing tests"
	default:
		return "Unknown commit type"
	}
}

// ParseCommitType parses a string into a CommitType.
// Only the exact lowercase token is accepted; "Feat" and "FEAT" are not types.
func ParseCommitType(s string) (CommitType, bool) {
	t := CommitType(s)
	if t.IsValid() {
		return t, true
	}
	return "", false
}

// Capitalize upper-cases the first character of s and leaves the rest unchanged.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	// A Caser is stateful; a fresh one keeps Capitalize safe for concurrent use.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}
