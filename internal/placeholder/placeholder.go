package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// pattern matches {{variable}} or {{ variable }} syntax.
var pattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_$][a-zA-Z0-9_\-$]*)\s*\}\}`)

// Extract returns all placeholder names found in the input string, in
// order of first appearance, without duplicates.
func Extract(input string) []string {
	matches := pattern.FindAllStringSubmatch(input, -1)
	seen := make(map[string]bool)
	var result []string

	for _, match := range matches {
		if len(match) >= 2 && !seen[match[1]] {
			seen[match[1]] = true
			result = append(result, match[1])
		}
	}

	return result
}

// ExtractFromCollection scans every URL, header value, and body in the
// collection tree and returns the distinct placeholder names in order of
// first appearance.
func ExtractFromCollection(coll *core.Collection) []string {
	seen := make(map[string]bool)
	var result []string

	add := func(input string) {
		for _, name := range Extract(input) {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}

	scanRequest := func(req core.Request) {
		add(req.URL)
		add(req.Body)
		for _, h := range req.Headers {
			add(h.Value)
		}
	}

	var scanFolder func(folder core.Folder)
	scanFolder = func(folder core.Folder) {
		for _, req := range folder.Requests {
			scanRequest(req)
		}
		for _, sf := range folder.Folders {
			scanFolder(sf)
		}
	}

	for _, req := range coll.Requests {
		scanRequest(req)
	}
	for _, folder := range coll.Folders {
		scanFolder(folder)
	}

	return result
}

// Undefined returns the placeholders used in the collection that no
// enabled variable defines.
func Undefined(coll *core.Collection) []string {
	vars := coll.VariableMap()
	var missing []string
	for _, name := range ExtractFromCollection(coll) {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Resolver substitutes placeholder values from a variable set.
type Resolver struct {
	variables     map[string]string
	keepUndefined bool
}

// NewResolver creates a resolver over the collection's enabled variables.
// With keepUndefined, placeholders with no value are left in place;
// otherwise resolving an undefined placeholder is an error.
func NewResolver(coll *core.Collection, keepUndefined bool) *Resolver {
	return &Resolver{
		variables:     coll.VariableMap(),
		keepUndefined: keepUndefined,
	}
}

// Resolve replaces every placeholder in the input with its variable
// value.
func (r *Resolver) Resolve(input string) (string, error) {
	var lastErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := pattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		name := submatch[1]

		if value, ok := r.variables[name]; ok {
			return value
		}
		if r.keepUndefined {
			return match
		}
		lastErr = fmt.Errorf("undefined placeholder: %s", name)
		return match
	})

	if lastErr != nil {
		return "", lastErr
	}
	return result, nil
}

// ResolveCollection returns a new collection with every URL, header
// value, and body resolved against the collection's own variables.
func (r *Resolver) ResolveCollection(coll *core.Collection) (*core.Collection, error) {
	clone := coll.Clone()

	var errs []string
	resolve := func(s string) string {
		out, err := r.Resolve(s)
		if err != nil {
			errs = append(errs, err.Error())
			return s
		}
		return out
	}

	resolveRequest := func(req *core.Request) {
		req.URL = resolve(req.URL)
		req.Body = resolve(req.Body)
		for i := range req.Headers {
			req.Headers[i].Value = resolve(req.Headers[i].Value)
		}
	}

	var resolveFolder func(folder *core.Folder)
	resolveFolder = func(folder *core.Folder) {
		for i := range folder.Requests {
			resolveRequest(&folder.Requests[i])
		}
		for i := range folder.Folders {
			resolveFolder(&folder.Folders[i])
		}
	}

	for i := range clone.Requests {
		resolveRequest(&clone.Requests[i])
	}
	for i := range clone.Folders {
		resolveFolder(&clone.Folders[i])
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return clone, nil
}
