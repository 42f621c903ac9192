package report

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is Excel's limit on worksheet names.
const MaxSheetNameLength = 31

// Sheet names of the fixed worksheets.
const (
	SummarySheetName    = "SUMMARY"
	UserDetailSheetName = "Task details"
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// SanitizeSheetName replaces characters Excel rejects and truncates to the
// sheet-name limit.
func SanitizeSheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	return truncateRunes(name, MaxSheetNameLength)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// sheetNamer hands out unique sheet names. Excel compares them case-insensitively.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer(reserved ...string) *sheetNamer {
	n := &sheetNamer{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

func (n *sheetNamer) next(name string) string {
	base := SanitizeSheetName(name)
	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, MaxSheetNameLength-len(suffix)) + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}
