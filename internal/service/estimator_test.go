package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galuhadi/ternakscale/internal/catalog"
	"github.com/galuhadi/ternakscale/internal/formula"
)

func newEstimator(t *testing.T) *Estimator {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return &Estimator{Catalog: cat}
}

func TestEstimateWinterLiteral(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	res, err := est.Estimate(Request{
		Species:    formula.SpeciesCattle,
		Method:     "Winter",
		ChestGirth: 150,
		BodyLength: 120,
	})
	require.NoError(t, err)
	require.Equal(t, 249.65, res.Weight)
	require.Equal(t, formula.MethodWinter, res.Method)
	require.Equal(t, 1.0, res.Factor)
	require.Equal(t, 1.0, res.SexFactor)
	require.Empty(t, res.Breed)
}

func TestEstimateSchoorlIgnoresLength(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	for _, length := range []float64{60, 120, 240} {
		res, err := est.Estimate(Request{
			Species:    formula.SpeciesCattle,
			Method:     "Schoorl",
			ChestGirth: 150,
			BodyLength: length,
		})
		require.NoError(t, err)
		require.Equal(t, 295.84, res.Weight)
	}
}

func TestEstimateZeroGirthFailsEverywhere(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	for _, species := range formula.AllSpecies {
		for _, m := range formula.Methods(species) {
			_, err := est.Estimate(Request{
				Species:    species,
				Method:     m.Name(),
				ChestGirth: 0,
				BodyLength: 100,
			})
			var invalid *InvalidMeasurementError
			require.ErrorAs(t, err, &invalid, "%s", m)
			require.Equal(t, "chest girth", invalid.Field)
			require.Equal(t, "must be positive", invalid.Reason)
		}
	}
}

func TestEstimateNegativeLengthFails(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	_, err := est.Estimate(Request{
		Species:    formula.SpeciesGoat,
		Method:     "Khan",
		ChestGirth: 70,
		BodyLength: -5,
	})
	var invalid *InvalidMeasurementError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "body length", invalid.Field)
}

func TestEstimateOutOfPlausibleRange(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	_, err := est.Estimate(Request{
		Species:    formula.SpeciesCattle,
		Method:     "Winter",
		ChestGirth: 400,
		BodyLength: 120,
	})
	var invalid *InvalidMeasurementError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "chest girth", invalid.Field)
	require.Contains(t, invalid.Reason, "between 30 and 300")
}

func TestEstimateUnknownMethodPropagates(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	_, err := est.Estimate(Request{
		Species:    formula.SpeciesSheep,
		Method:     "Nonexistent",
		ChestGirth: 90,
		BodyLength: 80,
	})
	var unknownErr *formula.UnknownMethodError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "Nonexistent", unknownErr.Name)
}

func TestSensitivityGrid(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	req := Request{
		Species:    formula.SpeciesCattle,
		Method:     "Winter",
		ChestGirth: 150,
		BodyLength: 120,
	}
	res, err := est.Estimate(req)
	require.NoError(t, err)
	require.Len(t, res.Sensitivity, 9)

	baseCount := 0
	prev := res.Sensitivity[0]
	for i, row := range res.Sensitivity {
		if row.Base {
			baseCount++
			require.Equal(t, req.ChestGirth, row.ChestGirth)
			require.Equal(t, req.BodyLength, row.BodyLength)
			require.Equal(t, res.Weight, row.Weight)
		}
		if i > 0 {
			ordered := row.ChestGirth > prev.ChestGirth ||
				(row.ChestGirth == prev.ChestGirth && row.BodyLength > prev.BodyLength)
			require.True(t, ordered, "row %d out of order", i)
			prev = row
		}
	}
	require.Equal(t, 1, baseCount)

	require.Equal(t, 148.0, res.Sensitivity[0].ChestGirth)
	require.Equal(t, 118.0, res.Sensitivity[0].BodyLength)
	require.Equal(t, 152.0, res.Sensitivity[8].ChestGirth)
	require.Equal(t, 122.0, res.Sensitivity[8].BodyLength)
}

func TestSensitivityCustomGrid(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	est.StepCM = 4
	est.Span = 2
	res, err := est.Estimate(Request{
		Species:    formula.SpeciesSheep,
		Method:     "Valdez",
		ChestGirth: 90,
		BodyLength: 80,
	})
	require.NoError(t, err)
	require.Len(t, res.Sensitivity, 25)
	require.Equal(t, 82.0, res.Sensitivity[0].ChestGirth)
	require.Equal(t, 72.0, res.Sensitivity[0].BodyLength)
}

func TestEstimateDeterministic(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	req := Request{
		Species:    formula.SpeciesGoat,
		Method:     "New Zealand",
		ChestGirth: 85.5,
		BodyLength: 72.25,
	}
	first, err := est.Estimate(req)
	require.NoError(t, err)
	second, err := est.Estimate(req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEstimateBreedAndSexFactors(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	res, err := est.Estimate(Request{
		Species:    formula.SpeciesCattle,
		Breed:      "Sapi Bali",
		Sex:        catalog.SexMale,
		ChestGirth: 150,
		BodyLength: 150,
	})
	require.NoError(t, err)
	// Schoorl at LD=150 is 295.84; Sapi Bali factor 1.0, male factor 1.1.
	require.Equal(t, 325.42, res.Weight)
	require.Equal(t, formula.MethodSchoorl, res.Method)
	require.Equal(t, "Sapi Bali", res.Breed)
	require.Equal(t, 1.1, res.SexFactor)

	female, err := est.Estimate(Request{
		Species:    formula.SpeciesCattle,
		Breed:      "Sapi Bali",
		Sex:        catalog.SexFemale,
		ChestGirth: 150,
		BodyLength: 150,
	})
	require.NoError(t, err)
	require.Equal(t, 266.26, female.Weight)
}

func TestEstimateBreedRangeValidation(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	// Kambing Kacang chest range is 50-80; the 0.8/1.2 band allows 40-96.
	_, err := est.Estimate(Request{
		Species:    formula.SpeciesGoat,
		Breed:      "Kambing Kacang",
		ChestGirth: 100,
		BodyLength: 55,
	})
	var invalid *InvalidMeasurementError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "chest girth", invalid.Field)
	require.Contains(t, invalid.Reason, "between 40 and 96")

	res, err := est.Estimate(Request{
		Species:    formula.SpeciesGoat,
		Breed:      "Kambing Kacang",
		ChestGirth: 65,
		BodyLength: 55,
	})
	require.NoError(t, err)
	require.Positive(t, res.Weight)
}

func TestEstimateUnknownBreedPropagates(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	_, err := est.Estimate(Request{
		Species:    formula.SpeciesSheep,
		Breed:      "Domba Merina",
		ChestGirth: 90,
		BodyLength: 80,
	})
	var unknownErr *catalog.UnknownBreedError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "Domba Merino", unknownErr.Suggestion)
}

func TestEstimateNSAClampsAtZero(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	res, err := est.Estimate(Request{
		Species:    formula.SpeciesSheep,
		Method:     "NSA Australia",
		ChestGirth: 80,
		BodyLength: 70,
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, res.Weight)
	for _, row := range res.Sensitivity {
		require.GreaterOrEqual(t, row.Weight, 0.0)
	}
}

func TestEstimateNonNegativeAcrossRegistry(t *testing.T) {
	t.Parallel()

	est := newEstimator(t)
	for _, species := range formula.AllSpecies {
		for _, m := range formula.Methods(species) {
			for girth := 40.0; girth <= 280; girth += 60 {
				for length := 40.0; length <= 280; length += 60 {
					res, err := est.Estimate(Request{
						Species:    species,
						Method:     m.Name(),
						ChestGirth: girth,
						BodyLength: length,
					})
					require.NoError(t, err)
					require.GreaterOrEqual(t, res.Weight, 0.0, "%s LD=%v PB=%v", m, girth, length)
					if m != formula.MethodNSAAustralia {
						require.Positive(t, res.Weight, "%s LD=%v PB=%v", m, girth, length)
					}
				}
			}
		}
	}
}
