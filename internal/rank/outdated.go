// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/pdiddy/code-rag/pkg/types"
)

type trackedLibrary struct {
	mention *regexp.Regexp
	current *semver.Version
}

// FilterOutdated drops every candidate whose content mentions a tracked
// library at a version that IsOutdated against the current one. versions
// maps library names to their current version. Versions that do not parse
// never cause a drop.
func FilterOutdated(candidates []types.Candidate, versions map[string]string) []types.Candidate {
	if len(versions) == 0 {
		return candidates
	}

	var libs []trackedLibrary
	for lib, v := range versions {
		if lib == "" {
			continue
		}
		current, err := semver.NewVersion(v)
		if err != nil {
			continue
		}
		libs = append(libs, trackedLibrary{mentionPattern(lib), current})
	}

	out := make([]types.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if !mentionsOutdated(cand.Content, libs) {
			out = append(out, cand)
		}
	}
	return out
}

func mentionsOutdated(content string, libs []trackedLibrary) bool {
	for _, l := range libs {
		for _, m := range l.mention.FindAllStringSubmatch(content, -1) {
			mentioned, err := semver.NewVersion(m[1])
			if err != nil {
				continue
			}
			if IsOutdated(mentioned, l.current) {
				return true
			}
		}
	}
	return false
}

// mentionPattern matches "numpy 1.2", "numpy v1.2.3" and "numpy version 1.2".
func mentionPattern(lib string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(lib) + `\s+(?:v|version\s+)?(\d+\.\d+(?:\.\d+)?)`)
}

// IsOutdated reports whether mentioned is more than one major version behind
// current, or on the same major version and more than three minor versions
// behind.
func IsOutdated(mentioned, current *semver.Version) bool {
	if mentioned.Major()+1 < current.Major() {
		return true
	}
	return mentioned.Major() == current.Major() && mentioned.Minor()+3 < current.Minor()
}
