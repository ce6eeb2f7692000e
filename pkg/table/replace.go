package table

import "strings"

// Replacement is a single old→new text substitution.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// ReplaceSubstrings applies every replacement, in order, as a full scan and
// replace over name. Matches may occur inside words and a later replacement
// sees the output of the earlier ones.
func ReplaceSubstrings(name string, replacements []Replacement) string {
	for _, r := range replacements {
		if r.Old == "" {
			continue
		}
		name = strings.ReplaceAll(name, r.Old, r.New)
	}
	return name
}

// ReplaceSuffixToken replaces the part of name following the last sep with
// its mapped value, if the part is an exact key of the mapping. Names without
// sep are returned unchanged.
func ReplaceSuffixToken(name, sep string, mapping map[string]string) string {
	i := strings.LastIndex(name, sep)
	if i < 0 {
		return name
	}

	if repl, ok := mapping[name[i+len(sep):]]; ok {
		return name[:i+len(sep)] + repl
	}

	return name
}
