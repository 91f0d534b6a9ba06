// Package catalog ships the static breed data: which formula a breed uses,
// its correction factors and the plausible measurement ranges recorded for
// it. The data is embedded at build time and immutable after Load.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/galuhadi/ternakscale/internal/formula"
)

//go:embed breeds.yaml
var breedsYAML []byte

// Sex selects the sex correction factor of a breed.
type Sex string

const (
	SexUnspecified Sex = ""
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
)

// ParseSex resolves a sex name, accepting the Indonesian terms jantan and
// betina. An empty string means unspecified (no correction applied).
func ParseSex(name string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return SexUnspecified, nil
	case "male", "jantan":
		return SexMale, nil
	case "female", "betina":
		return SexFemale, nil
	default:
		return SexUnspecified, fmt.Errorf("unknown sex %q", name)
	}
}

// Range is a plausible measurement band in cm.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Breed binds a formula method to breed-specific correction data.
type Breed struct {
	Name         string          `yaml:"name"`
	Species      formula.Species `yaml:"-"`
	Method       formula.Method  `yaml:"-"`
	MethodName   string          `yaml:"method"`
	Factor       float64         `yaml:"factor"`
	MaleFactor   float64         `yaml:"male_factor"`
	FemaleFactor float64         `yaml:"female_factor"`
	Chest        Range           `yaml:"chest"`
	Length       Range           `yaml:"length"`
}

// SexFactor returns the correction factor for the given sex, 1.0 when
// unspecified.
func (b Breed) SexFactor(sex Sex) float64 {
	switch sex {
	case SexMale:
		return b.MaleFactor
	case SexFemale:
		return b.FemaleFactor
	default:
		return 1.0
	}
}

// UnknownBreedError reports a breed name not present in the catalog for the
// requested species.
type UnknownBreedError struct {
	Species    formula.Species
	Name       string
	Suggestion string
}

func (e *UnknownBreedError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown %s breed %q (did you mean %q?)", e.Species, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown %s breed %q", e.Species, e.Name)
}

// Catalog is the loaded, validated breed data.
type Catalog struct {
	bySpecies map[formula.Species][]Breed
}

type breedsFile struct {
	Cattle []Breed `yaml:"cattle"`
	Goat   []Breed `yaml:"goat"`
	Sheep  []Breed `yaml:"sheep"`
}

// Load parses and validates the embedded breed data.
func Load() (*Catalog, error) {
	var file breedsFile
	if err := yaml.Unmarshal(breedsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse breeds.yaml: %w", err)
	}
	c := &Catalog{bySpecies: map[formula.Species][]Breed{}}
	for species, breeds := range map[formula.Species][]Breed{
		formula.SpeciesCattle: file.Cattle,
		formula.SpeciesGoat:   file.Goat,
		formula.SpeciesSheep:  file.Sheep,
	} {
		if len(breeds) == 0 {
			return nil, fmt.Errorf("breeds.yaml: no %s breeds defined", species)
		}
		for i := range breeds {
			b := &breeds[i]
			b.Species = species
			if err := validateBreed(b); err != nil {
				return nil, fmt.Errorf("breeds.yaml: %s: %w", species, err)
			}
		}
		c.bySpecies[species] = breeds
	}
	return c, nil
}

func validateBreed(b *Breed) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("breed with empty name")
	}
	method, err := formula.Resolve(b.Species, b.MethodName)
	if err != nil {
		return fmt.Errorf("breed %q: %w", b.Name, err)
	}
	b.Method = method
	if b.Factor <= 0 || b.MaleFactor <= 0 || b.FemaleFactor <= 0 {
		return fmt.Errorf("breed %q: correction factors must be positive", b.Name)
	}
	for label, r := range map[string]Range{"chest": b.Chest, "length": b.Length} {
		if r.Min <= 0 || r.Max <= r.Min {
			return fmt.Errorf("breed %q: invalid %s range %v-%v", b.Name, label, r.Min, r.Max)
		}
	}
	return nil
}

// Breeds lists the breeds of a species in catalog order.
func (c *Catalog) Breeds(species formula.Species) []Breed {
	return c.bySpecies[species]
}

// Find looks up a breed by name, case-insensitively.
func (c *Catalog) Find(species formula.Species, name string) (Breed, error) {
	want := foldName(name)
	for _, b := range c.bySpecies[species] {
		if foldName(b.Name) == want {
			return b, nil
		}
	}
	return Breed{}, &UnknownBreedError{
		Species:    species,
		Name:       name,
		Suggestion: c.suggest(species, want),
	}
}

func foldName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (c *Catalog) suggest(species formula.Species, folded string) string {
	best := ""
	bestDist := 0
	for _, b := range c.bySpecies[species] {
		dist := levenshtein.ComputeDistance(foldName(b.Name), folded)
		if best == "" || dist < bestDist {
			best = b.Name
			bestDist = dist
		}
	}
	if best == "" {
		return ""
	}
	maxlen := len(folded)
	if n := len(foldName(best)); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 || float64(bestDist)/float64(maxlen) >= 0.5 {
		return ""
	}
	return best
}
