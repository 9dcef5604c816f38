package stale_scanner

import "strings"

// SuffixMapping pairs a grammar suffix with the suffixes its markers use.
// Matching is case sensitive, so ".jj" and ".JJ" need separate mappings.
type SuffixMapping struct {
	SourceSuffix   string
	TargetSuffixes []string
}

// NewSuffixMapping creates a mapping from sourceSuffix to one or more target suffixes.
func NewSuffixMapping(sourceSuffix string, targetSuffixes ...string) SuffixMapping {
	return SuffixMapping{
		SourceSuffix:   sourceSuffix,
		TargetSuffixes: targetSuffixes,
	}
}

// DefaultMappings are the mappings used for JavaCC grammars.
func DefaultMappings() []SuffixMapping {
	return []SuffixMapping{
		NewSuffixMapping(".jj", ".jj"),
		NewSuffixMapping(".JJ", ".JJ"),
	}
}

// Matches reports whether name ends with the source suffix.
func (m SuffixMapping) Matches(name string) bool {
	return m.SourceSuffix != "" && strings.HasSuffix(name, m.SourceSuffix)
}

// TargetNames returns the marker names expected for name, or nil when name
// does not match.
func (m SuffixMapping) TargetNames(name string) []string {
	if !m.Matches(name) {
		return nil
	}
	base := strings.TrimSuffix(name, m.SourceSuffix)
	names := make([]string, 0, len(m.TargetSuffixes))
	for _, suffix := range m.TargetSuffixes {
		names = append(names, base+suffix)
	}
	return names
}
