// Package service implements the weight estimation on top of the formula
// registry and breed catalog.
package service

import (
	"fmt"
	"math"

	"github.com/galuhadi/ternakscale/internal/catalog"
	"github.com/galuhadi/ternakscale/internal/formula"
)

// Default sensitivity grid: one 2 cm step each side of the measured value.
const (
	DefaultStepCM = 2.0
	DefaultSpan   = 1
)

// DefaultLimits is the conservative plausible band applied when no breed is
// selected. Chest girth and body length outside 30-300 cm are rejected for
// every species.
var DefaultLimits = Range{Min: 30, Max: 300}

// Breed ranges are widened by this band before validation, matching the
// flexibility the original field guide allowed around its recorded ranges.
const (
	rangeFlexLow  = 0.8
	rangeFlexHigh = 1.2
)

// Range is an inclusive measurement band in cm.
type Range struct {
	Min float64
	Max float64
}

func (r Range) contains(v float64) bool { return v >= r.Min && v <= r.Max }

// InvalidMeasurementError reports a measurement that fails validation. Field
// names the offending input; the caller must resupply a corrected value.
type InvalidMeasurementError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidMeasurementError) Error() string {
	return fmt.Sprintf("invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

// Request carries one estimation call. Species and the two measurements are
// required. Method selects the formula directly; Breed (with optional Sex)
// selects it via the catalog instead and additionally applies the breed's
// correction factors and measurement ranges.
type Request struct {
	Species    formula.Species
	Method     string
	Breed      string
	Sex        catalog.Sex
	ChestGirth float64
	BodyLength float64
}

// Row is one sensitivity table entry. Base marks the row computed from the
// unperturbed request inputs.
type Row struct {
	ChestGirth float64
	BodyLength float64
	Weight     float64
	Base       bool
}

// Result is the outcome of a successful estimation.
type Result struct {
	Weight      float64
	Method      formula.Method
	Breed       string
	Factor      float64
	SexFactor   float64
	GirthRange  Range
	LengthRange Range
	Sensitivity []Row
}

// Estimator validates measurements, dispatches to the selected formula and
// builds the sensitivity table. The zero value uses the default limits and
// grid; a Catalog is only required for breed-based requests. Estimator holds
// no mutable state, so a single instance is safe for concurrent use.
type Estimator struct {
	Catalog *catalog.Catalog
	Limits  Range
	StepCM  float64
	Span    int
}

// Estimate computes the weight for one request plus its sensitivity table.
// The final weight is rounded to two decimals and clamped at zero: the linear
// NSA Australia formula can fall below zero for small sheep, and a negative
// weight is never a useful answer.
func (e *Estimator) Estimate(req Request) (Result, error) {
	method, breed, err := e.dispatch(req)
	if err != nil {
		return Result{}, err
	}

	girthRange, lengthRange := e.ranges(breed)
	if err := validateField("chest girth", req.ChestGirth, girthRange); err != nil {
		return Result{}, err
	}
	if err := validateField("body length", req.BodyLength, lengthRange); err != nil {
		return Result{}, err
	}

	factor, sexFactor := 1.0, 1.0
	breedName := ""
	if breed != nil {
		factor = breed.Factor
		sexFactor = breed.SexFactor(req.Sex)
		breedName = breed.Name
	}

	weigh := func(girth, length float64) float64 {
		w := method.Evaluate(girth, length) * factor * sexFactor
		return math.Max(0, math.Round(w*100)/100)
	}

	return Result{
		Weight:      weigh(req.ChestGirth, req.BodyLength),
		Method:      method,
		Breed:       breedName,
		Factor:      factor,
		SexFactor:   sexFactor,
		GirthRange:  girthRange,
		LengthRange: lengthRange,
		Sensitivity: e.sensitivity(req, weigh),
	}, nil
}

// dispatch resolves the formula, either through the breed catalog or directly
// by method name. Unknown method and breed errors propagate unchanged.
func (e *Estimator) dispatch(req Request) (formula.Method, *catalog.Breed, error) {
	if req.Breed != "" {
		if e.Catalog == nil {
			return 0, nil, fmt.Errorf("breed %q requested but no catalog loaded", req.Breed)
		}
		b, err := e.Catalog.Find(req.Species, req.Breed)
		if err != nil {
			return 0, nil, err
		}
		return b.Method, &b, nil
	}
	m, err := formula.Resolve(req.Species, req.Method)
	if err != nil {
		return 0, nil, err
	}
	return m, nil, nil
}

// ranges returns the effective validation bands: the breed's recorded ranges
// widened by the flexibility band, or the global limits when no breed is
// selected.
func (e *Estimator) ranges(breed *catalog.Breed) (girth, length Range) {
	if breed != nil {
		return Range{Min: breed.Chest.Min * rangeFlexLow, Max: breed.Chest.Max * rangeFlexHigh},
			Range{Min: breed.Length.Min * rangeFlexLow, Max: breed.Length.Max * rangeFlexHigh}
	}
	limits := e.Limits
	if limits.Max <= 0 {
		limits = DefaultLimits
	}
	return limits, limits
}

func validateField(field string, value float64, r Range) error {
	if value <= 0 {
		return &InvalidMeasurementError{Field: field, Value: value, Reason: "must be positive"}
	}
	if !r.contains(value) {
		return &InvalidMeasurementError{
			Field:  field,
			Value:  value,
			Reason: fmt.Sprintf("must be between %g and %g cm", r.Min, r.Max),
		}
	}
	return nil
}

// sensitivity evaluates the formula on a fixed offset grid around the request
// inputs. Rows are ordered by chest girth ascending then body length
// ascending; exactly one row is the base row. Perturbed inputs are not
// re-validated against the plausible band since they derive from a validated
// base measurement.
func (e *Estimator) sensitivity(req Request, weigh func(girth, length float64) float64) []Row {
	step := e.StepCM
	if step <= 0 {
		step = DefaultStepCM
	}
	span := e.Span
	if span <= 0 {
		span = DefaultSpan
	}

	side := 2*span + 1
	rows := make([]Row, 0, side*side)
	for i := -span; i <= span; i++ {
		girth := req.ChestGirth + float64(i)*step
		for j := -span; j <= span; j++ {
			length := req.BodyLength + float64(j)*step
			rows = append(rows, Row{
				ChestGirth: girth,
				BodyLength: length,
				Weight:     weigh(girth, length),
				Base:       i == 0 && j == 0,
			})
		}
	}
	return rows
}
