package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/galuhadi/ternakscale/internal/catalog"
	"github.com/galuhadi/ternakscale/internal/config"
	"github.com/galuhadi/ternakscale/internal/service"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	cfg := config.Config{
		Sensitivity: config.SensitivityConfig{StepCM: 2, Span: 1},
		Limits:      config.LimitsConfig{MinCM: 30, MaxCM: 300},
		UI:          config.UIConfig{DefaultSpecies: "cattle"},
	}
	est := &service.Estimator{
		Catalog: cat,
		Limits:  service.Range{Min: cfg.Limits.MinCM, Max: cfg.Limits.MaxCM},
		StepCM:  cfg.Sensitivity.StepCM,
		Span:    cfg.Sensitivity.Span,
	}
	return New(cfg, cat, est)
}

func press(a *App, msg tea.KeyMsg) {
	_, _ = a.Update(msg)
}

func typeText(a *App, text string) {
	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMethodFlowProducesEstimate(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	require.Equal(t, stepSpecies, a.step)

	press(a, keyEnter) // cattle
	require.Equal(t, stepPick, a.step)

	press(a, keyTab) // switch from breeds to formulas
	require.Equal(t, pickMethods, a.mode)

	press(a, keyEnter) // Winter
	require.Equal(t, stepMeasure, a.step)

	typeText(a, "150")
	press(a, keyEnter) // to body length
	typeText(a, "120")
	press(a, keyEnter) // submit

	require.Equal(t, stepResult, a.step)
	require.NotNil(t, a.result)
	require.Equal(t, 249.65, a.result.Weight)
	require.Len(t, a.result.Sensitivity, 9)

	view := a.View()
	require.Contains(t, view, "249.65 kg")
	require.Contains(t, view, "Winter")
	require.Contains(t, view, "measured")
}

func TestBreedFlowAppliesFactors(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	press(a, keyEnter) // cattle
	press(a, keyEnter) // Sapi Bali (first breed)
	require.Equal(t, stepSex, a.step)

	press(a, keyEnter) // male
	require.Equal(t, stepMeasure, a.step)

	typeText(a, "150")
	press(a, keyEnter)
	typeText(a, "150")
	press(a, keyEnter)

	require.Equal(t, stepResult, a.step)
	require.Equal(t, 325.42, a.result.Weight)
	require.Equal(t, "Sapi Bali", a.result.Breed)
}

func TestInvalidMeasurementStaysOnForm(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	press(a, keyEnter)
	press(a, keyTab)
	press(a, keyEnter)

	typeText(a, "0")
	press(a, keyEnter)
	typeText(a, "120")
	press(a, keyEnter)

	require.Equal(t, stepMeasure, a.step)
	require.Contains(t, a.status, "chest girth")
	require.Contains(t, a.View(), "chest girth")
}

func TestEscNavigatesBack(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	press(a, keyEnter)
	require.Equal(t, stepPick, a.step)
	press(a, keyDown)
	press(a, keyEsc)
	require.Equal(t, stepSpecies, a.step)
}

func TestRenderSensitivityTable(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	res, err := a.estimator.Estimate(service.Request{
		Species:    a.species,
		Method:     "Winter",
		ChestGirth: 150,
		BodyLength: 120,
	})
	require.NoError(t, err)

	table := renderSensitivity(&res)
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 10) // header + 9 rows
	require.Equal(t, 1, strings.Count(table, "measured"))

	chart := renderChart(&res)
	require.Len(t, strings.Split(chart, "\n"), 3)
	require.Contains(t, chart, "▸")
}
