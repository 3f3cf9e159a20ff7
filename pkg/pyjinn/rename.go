package pyjinn

import "github.com/tidwall/match"

// RenameMap rewrites the "pretty" names a script sees for host classes and
// members to whatever the embedder wants a script to call them, e.g.
// exposing a Go type registered as "myapp.internal.Widget" to scripts
// under the shorter name "Widget". Patterns are matched with
// github.com/tidwall/match, so a trailing "*" behaves as a wildcard
// (e.g. "myapp.internal.*" rewrites anything under that prefix); exact
// entries always win over a wildcard one covering the same name.
type RenameMap struct {
	exact     map[string]string
	wildcards []renameRule
}

type renameRule struct {
	pattern     string
	replacement string
}

// NewRenameMap builds a RenameMap from a literal name -> name table.
// Keys containing "*" or "?" are treated as wildcard patterns; all others
// are matched exactly.
func NewRenameMap(entries map[string]string) *RenameMap {
	rm := &RenameMap{exact: map[string]string{}}
	for pattern, replacement := range entries {
		if containsWildcard(pattern) {
			rm.wildcards = append(rm.wildcards, renameRule{pattern: pattern, replacement: replacement})
			continue
		}
		rm.exact[pattern] = replacement
	}
	return rm
}

func containsWildcard(pattern string) bool {
	for _, r := range pattern {
		if r == '*' || r == '?' {
			return true
		}
	}
	return false
}

// Resolve returns the rewritten name for name, and whether any rule
// matched it. Exact entries are checked before wildcard ones. Wildcard
// rules are kept in the iteration order of the map given to NewRenameMap,
// so when two wildcards match the same name, which one wins is not
// defined.
func (rm *RenameMap) Resolve(name string) (string, bool) {
	if rm == nil {
		return "", false
	}
	if renamed, ok := rm.exact[name]; ok {
		return renamed, true
	}
	for _, rule := range rm.wildcards {
		if match.Match(name, rule.pattern) {
			return rewriteWithWildcard(rule.pattern, rule.replacement, name), true
		}
	}
	return "", false
}

// rewriteWithWildcard applies the matched wildcard's captured suffix to
// replacement when both pattern and replacement end in "*", so a rule
// like "myapp.internal.*" -> "short.*" maps "myapp.internal.Widget" to
// "short.Widget" rather than the literal string "short.*". Anything else
// (no trailing wildcard on either side, or a pattern with "*" in the
// middle) returns replacement verbatim: every name matching the pattern
// maps to that one name.
func rewriteWithWildcard(pattern, replacement, name string) string {
	if len(replacement) == 0 || replacement[len(replacement)-1] != '*' {
		return replacement
	}
	if len(pattern) == 0 || pattern[len(pattern)-1] != '*' {
		return replacement
	}
	prefixLen := min(len(pattern)-1, len(name))
	return replacement[:len(replacement)-1] + name[prefixLen:]
}
