package addrsplit

import (
	"sort"
	"strings"

	"github.com/tidwall/hashmap"
)

const fallbackTLDVersion string = "Failed to fetch TLDs"

var fallbackTLDs = []string{"com", "org", "net", "edu", "gov", "mil", "int"}

// TLDSet is a read-only set of lowercase top level domains,
// labelled with the version of the list it was built from.
//
// A TLDSet is safe for concurrent use once constructed.
type TLDSet struct {
	version string
	labels  hashmap.Map[string, struct{}]
}

// NewTLDSet creates a TLDSet from labels.
//
// Labels are trimmed and lowercased. Empty labels are skipped.
func NewTLDSet(version string, labels []string) *TLDSet {
	s := &TLDSet{version: version}
	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if len(label) == 0 {
			continue
		}
		s.labels.Set(label, struct{}{})
	}
	return s
}

// DefaultTLDSet returns the small built-in set used
// when no TLD list can be retrieved.
func DefaultTLDSet() *TLDSet {
	return NewTLDSet(fallbackTLDVersion, fallbackTLDs)
}

// Version returns the version label of the list s was built from.
func (s *TLDSet) Version() string {
	return s.version
}

// Len returns the number of TLDs in s.
func (s *TLDSet) Len() int {
	return s.labels.Len()
}

// Contains reports whether label is a TLD in s.
func (s *TLDSet) Contains(label string) bool {
	_, ok := s.labels.Get(label)
	return ok
}

// Labels returns the TLDs in s sorted in ascending order.
func (s *TLDSet) Labels() []string {
	labels := make([]string, 0, s.labels.Len())
	s.labels.Scan(func(label string, _ struct{}) bool {
		labels = append(labels, label)
		return true
	})
	sort.Strings(labels)
	return labels
}

// occursIn reports whether any TLD in s is a substring of str.
func (s *TLDSet) occursIn(str string) bool {
	var found bool
	s.labels.Scan(func(label string, _ struct{}) bool {
		found = strings.Contains(str, label)
		return !found
	})
	return found
}

// IsCompoundPrefix reports whether label is known to precede a
// country-code TLD in two-label TLDs like gov.bs or co.uk.
func IsCompoundPrefix(label string) bool {
	switch label {
	case "gov", "co", "com", "org", "net", "ac", "edu", "or", "ne", "go":
		return true
	}
	return false
}
