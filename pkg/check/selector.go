package check

import (
	"fmt"
	"path"
	"sort"
)

// matchesPattern returns true if the check matches the selector pattern
// Pattern can be:
//   - Wildcard: "*" matches all checks
//   - Tag shortcut: "models", "signals", ...
//   - Exact name: "models.all"
//   - Glob pattern: "models.*", "*signals*"
func matchesPattern(c *Check, pattern string) (bool, error) {
	if pattern == "*" {
		return true, nil
	}

	if c.HasTag(Tag(pattern)) {
		return true, nil
	}

	if pattern == c.Name {
		return true, nil
	}

	matched, err := path.Match(pattern, c.Name)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return matched, nil
}

// ListByPattern returns visible checks matching the pattern, sorted by name.
func (r *Registry) ListByPattern(pattern string, includeDeploy bool) ([]*Check, error) {
	var matched []*Check

	for _, c := range r.GetChecks(includeDeploy) {
		ok, err := matchesPattern(c, pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern matching: %w", err)
		}

		if ok {
			matched = append(matched, c)
		}
	}

	sort.Slice(matched, func(i int, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	return matched, nil
}
