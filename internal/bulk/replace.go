package bulk

import (
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// Scope selects which fields a find/replace operation targets.
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeVariables Scope = "variables"
	ScopeRequests  Scope = "requests"
)

// maxDepth caps folder recursion, mirroring the exporters' defensive
// limit for externally edited trees.
const maxDepth = 64

// ReplaceOptions configures a collection-wide find/replace. Find is a
// literal substring, never a regular expression.
type ReplaceOptions struct {
	Find          string
	Replace       string
	Scope         Scope
	CaseSensitive bool
}

// ReplaceResult carries the rewritten tree and the number of substring
// occurrences replaced (not the number of fields touched).
type ReplaceResult struct {
	Collection *core.Collection
	Count      int
}

// Replace rewrites every occurrence of the find term within the selected
// scope and returns a new collection tree; the input is never mutated.
// An empty find term is a zero-count no-op. When nothing matched, the
// original collection reference is returned unchanged.
func Replace(coll *core.Collection, opts ReplaceOptions) ReplaceResult {
	if opts.Find == "" {
		return ReplaceResult{Collection: coll}
	}
	if opts.Scope == "" {
		opts.Scope = ScopeAll
	}

	clone := coll.Clone()
	count := 0

	apply := func(s string) string {
		out, n := replaceLiteral(s, opts.Find, opts.Replace, opts.CaseSensitive)
		count += n
		return out
	}

	if opts.Scope == ScopeVariables || opts.Scope == ScopeAll {
		for i := range clone.Variables {
			clone.Variables[i].Value = apply(clone.Variables[i].Value)
		}
	}

	if opts.Scope == ScopeRequests || opts.Scope == ScopeAll {
		for i := range clone.Requests {
			replaceInRequest(&clone.Requests[i], apply)
		}
		for i := range clone.Folders {
			replaceInFolder(&clone.Folders[i], apply, 0)
		}
	}

	if count == 0 {
		return ReplaceResult{Collection: coll}
	}
	return ReplaceResult{Collection: clone, Count: count}
}

func replaceInFolder(folder *core.Folder, apply func(string) string, depth int) {
	for i := range folder.Requests {
		replaceInRequest(&folder.Requests[i], apply)
	}
	if depth >= maxDepth {
		return
	}
	for i := range folder.Folders {
		replaceInFolder(&folder.Folders[i], apply, depth+1)
	}
}

func replaceInRequest(req *core.Request, apply func(string) string) {
	req.URL = apply(req.URL)
	req.Body = apply(req.Body)
	for i := range req.Headers {
		req.Headers[i].Value = apply(req.Headers[i].Value)
	}
}

// replaceLiteral replaces literal substring occurrences and reports how
// many were rewritten. The case-insensitive path scans a lowered shadow
// of the input; when lowering changes the byte length (rare unicode
// case folds) it falls back to exact matching to keep offsets aligned.
func replaceLiteral(s, find, replacement string, caseSensitive bool) (string, int) {
	if !caseSensitive {
		lower := strings.ToLower(s)
		lowerFind := strings.ToLower(find)
		if len(lower) == len(s) && len(lowerFind) == len(find) {
			return replaceByIndex(s, lower, lowerFind, find, replacement)
		}
	}

	n := strings.Count(s, find)
	if n == 0 {
		return s, 0
	}
	return strings.ReplaceAll(s, find, replacement), n
}

func replaceByIndex(s, shadow, shadowFind, find, replacement string) (string, int) {
	var b strings.Builder
	count := 0
	i := 0
	for {
		idx := strings.Index(shadow[i:], shadowFind)
		if idx < 0 {
			break
		}
		b.WriteString(s[i : i+idx])
		b.WriteString(replacement)
		i += idx + len(find)
		count++
	}
	if count == 0 {
		return s, 0
	}
	b.WriteString(s[i:])
	return b.String(), count
}
