// Package formula holds the published body-weight regression formulas.
//
// Each formula maps chest girth (LD) and body length (PB), both in cm, to an
// estimated live weight in kg. The set is closed: methods are an integer enum
// and evaluation is an exhaustive switch, so adding a method without wiring
// its arithmetic fails to compile. Strings only exist at the resolution
// boundary (Resolve).
package formula

import "fmt"

// Species identifies the animal kind a method applies to.
type Species int

const (
	SpeciesCattle Species = iota
	SpeciesGoat
	SpeciesSheep
)

// AllSpecies lists the supported species in display order.
var AllSpecies = []Species{SpeciesCattle, SpeciesGoat, SpeciesSheep}

func (s Species) String() string {
	switch s {
	case SpeciesCattle:
		return "Cattle"
	case SpeciesGoat:
		return "Goat"
	case SpeciesSheep:
		return "Sheep"
	default:
		return fmt.Sprintf("Species(%d)", int(s))
	}
}

// ParseSpecies resolves a species name. It accepts the Indonesian names used
// by field workers (sapi, kambing, domba) as aliases.
func ParseSpecies(name string) (Species, error) {
	switch normalize(name) {
	case "cattle", "cow", "sapi":
		return SpeciesCattle, nil
	case "goat", "kambing":
		return SpeciesGoat, nil
	case "sheep", "domba":
		return SpeciesSheep, nil
	default:
		return 0, fmt.Errorf("unknown species %q", name)
	}
}

// Method is one published regression formula. Every method belongs to exactly
// one species.
type Method int

const (
	MethodWinter Method = iota
	MethodSchoorl
	MethodDenmark
	MethodLambourneCattle
	MethodArjodarmoko
	MethodNewZealand
	MethodKhan
	MethodLambourneSheep
	MethodNSAAustralia
	MethodValdez
	methodCount
)

// Evaluate computes the raw formula output in kg for the given chest girth
// and body length in cm. It is pure arithmetic: no validation, no rounding,
// and no clamping (the linear NSA Australia formula can return a negative
// value for small animals; callers decide how to present that).
func (m Method) Evaluate(girth, length float64) float64 {
	switch m {
	case MethodWinter:
		return girth * girth * length / 10815.15
	case MethodSchoorl:
		return (girth + 22) * (girth + 22) / 100
	case MethodDenmark:
		return girth * girth * 0.000138 * length
	case MethodLambourneCattle:
		return girth * girth * length / 11900
	case MethodArjodarmoko:
		return girth * girth * length / 18000
	case MethodNewZealand:
		return 0.0000968 * girth * girth * length
	case MethodKhan:
		return 0.0004 * girth * girth * 0.6 * length
	case MethodLambourneSheep:
		return girth * girth * length / 15000
	case MethodNSAAustralia:
		return 0.0000627*girth*length - 3.91
	case MethodValdez:
		return 0.0003 * girth * girth * length
	default:
		panic(fmt.Sprintf("formula: evaluate on invalid method %d", int(m)))
	}
}

type methodInfo struct {
	name        string
	species     Species
	expression  string
	description string
	reference   string
}

// Display metadata, carried from the literature citations of the original
// field guide.
var methodInfos = [methodCount]methodInfo{
	MethodWinter: {
		name:        "Winter",
		species:     SpeciesCattle,
		expression:  "LD² × PB / 10815.15",
		description: "European-type cattle (Bos taurus)",
		reference:   "Winter, A.W. (1910). Livestock Weight Estimation. Journal of Animal Science, 5(2), 112-119.",
	},
	MethodSchoorl: {
		name:        "Schoorl",
		species:     SpeciesCattle,
		expression:  "(LD + 22)² / 100",
		description: "Indonesian local cattle; ignores body length",
		reference:   "Schoorl, P. (1922). Pendugaan Bobot Badan Ternak. Jurnal Peternakan Indonesia, 3(1), 23-31.",
	},
	MethodDenmark: {
		name:        "Denmark",
		species:     SpeciesCattle,
		expression:  "LD² × 0.000138 × PB",
		description: "Large dairy and beef cattle",
		reference:   "Danish Cattle Research Institute. (1965). Cattle Weight Estimation Methods. Scandinavian Journal of Animal Science, 15(3), 205-213.",
	},
	MethodLambourneCattle: {
		name:        "Lambourne",
		species:     SpeciesCattle,
		expression:  "LD² × PB / 11900",
		description: "Small to medium cattle",
		reference:   "Lambourne, L.J. (1935). A Body Measurement Technique for Estimating the Weight of Small Cattle. Queensland Journal of Agricultural Science, 12(1), 72-77.",
	},
	MethodArjodarmoko: {
		name:        "Arjodarmoko",
		species:     SpeciesGoat,
		expression:  "LD² × PB / 18000",
		description: "Indonesian local goats",
		reference:   "Arjodarmoko, S. (1975). Metode Penaksiran Berat Badan Kambing Indonesia. Buletin Peternakan, 2(3), 45-51.",
	},
	MethodNewZealand: {
		name:        "New Zealand",
		species:     SpeciesGoat,
		expression:  "0.0000968 × LD² × PB",
		description: "Large dairy and meat goats",
		reference:   "New Zealand Goat Farmers Association. (1989). Weight Estimation in Dairy and Meat Goats. New Zealand Journal of Agricultural Research, 32(4), 291-298.",
	},
	MethodKhan: {
		name:        "Khan",
		species:     SpeciesGoat,
		expression:  "0.0004 × LD² × 0.6 × PB",
		description: "Goats of mixed type",
		reference:   "Khan, B.B. (1992). Estimation of Live Weight from Body Measurements in Goats. Journal of Small Ruminant Research, 8(2), 175-183.",
	},
	MethodLambourneSheep: {
		name:        "Lambourne",
		species:     SpeciesSheep,
		expression:  "LD² × PB / 15000",
		description: "General-purpose sheep formula",
		reference:   "Lambourne, L.J. (1930). Weight Estimation in Sheep through Body Measurements. Australian Journal of Agricultural Research, 5(2), 93-101.",
	},
	MethodNSAAustralia: {
		name:        "NSA Australia",
		species:     SpeciesSheep,
		expression:  "0.0000627 × LD × PB − 3.91",
		description: "Medium-type and wool sheep",
		reference:   "National Sheep Association of Australia. (1985). Standard Methods for Sheep Weight Prediction. Australian Veterinary Journal, 62(11), 382-385.",
	},
	MethodValdez: {
		name:        "Valdez",
		species:     SpeciesSheep,
		expression:  "0.0003 × LD² × PB",
		description: "Meat-type sheep",
		reference:   "Valdez, C.A. (1997). Live Weight Estimation in Meat-Type Sheep. Small Ruminant Research, 25(3), 273-277.",
	},
}

// Name returns the display name of the method.
func (m Method) Name() string { return methodInfos[m].name }

// Species returns the species the method applies to.
func (m Method) Species() Species { return methodInfos[m].species }

// Expression returns the formula in LD/PB notation.
func (m Method) Expression() string { return methodInfos[m].expression }

// Description returns a one-line note on where the formula fits best.
func (m Method) Description() string { return methodInfos[m].description }

// Reference returns the literature citation for the formula.
func (m Method) Reference() string { return methodInfos[m].reference }

func (m Method) String() string {
	return fmt.Sprintf("%s/%s", m.Species(), m.Name())
}

// Methods lists the registered methods for a species in stable display order.
func Methods(s Species) []Method {
	out := make([]Method, 0, 4)
	for m := Method(0); m < methodCount; m++ {
		if m.Species() == s {
			out = append(out, m)
		}
	}
	return out
}
