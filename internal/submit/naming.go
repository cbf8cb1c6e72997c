package submit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultResumeName is used when neither the request nor the document names a new resume.
const DefaultResumeName = "Resume"

var numberedName = regexp.MustCompile(`^(.*\S)\s+\((\d+)\)$`)

// SuggestName returns base if no existing name equals it, otherwise the first
// free "base (n)" counting from 1. A trailing "(n)" on base is treated as a
// counter, so "Resume (1)" never becomes "Resume (1) (1)".
func SuggestName(base string, existing []string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultResumeName
	}

	taken := make(map[string]bool, len(existing))
	for _, n := range existing {
		taken[strings.ToLower(strings.TrimSpace(n))] = true
	}
	if !taken[strings.ToLower(base)] {
		return base
	}

	root, start := base, 1
	if m := numberedName.FindStringSubmatch(base); m != nil {
		root = m[1]
		if n, err := strconv.Atoi(m[2]); err == nil {
			start = n + 1
		}
	}

	for n := start; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", root, n)
		if !taken[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
