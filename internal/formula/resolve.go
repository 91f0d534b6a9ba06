package formula

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// UnknownMethodError reports a (species, method) pair that is not registered.
// The set of valid methods is closed, so hitting this is a caller-side
// selection bug; Suggestion carries the nearest registered name when one is
// close enough to be worth offering.
type UnknownMethodError struct {
	Species    Species
	Name       string
	Suggestion string
}

func (e *UnknownMethodError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s method %q (did you mean %q?)", e.Species, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s method %q", e.Species, e.Name)
}

// normalize folds case and strips separators so that "NSA Australia",
// "nsa-australia" and "NSAAustralia" all resolve to the same method.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// Resolve looks up a method by name within a species.
func Resolve(species Species, name string) (Method, error) {
	want := normalize(name)
	for _, m := range Methods(species) {
		if normalize(m.Name()) == want {
			return m, nil
		}
	}
	return 0, &UnknownMethodError{
		Species:    species,
		Name:       name,
		Suggestion: suggest(species, want),
	}
}

// suggest returns the registered method name closest to the input, or "" when
// nothing is within a useful edit distance.
func suggest(species Species, normalized string) string {
	best := ""
	bestDist := 0
	for _, m := range Methods(species) {
		dist := levenshtein.ComputeDistance(normalize(m.Name()), normalized)
		if best == "" || dist < bestDist {
			best = m.Name()
			bestDist = dist
		}
	}
	if best == "" {
		return ""
	}
	maxlen := len(normalized)
	if n := len(normalize(best)); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 || float64(bestDist)/float64(maxlen) >= 0.5 {
		return ""
	}
	return best
}
