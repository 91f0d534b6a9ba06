// Package tui is the terminal presentation layer. It owns all rendering and
// input handling and calls into the estimator with plain values; the
// calculation core knows nothing about it.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/galuhadi/ternakscale/internal/catalog"
	"github.com/galuhadi/ternakscale/internal/config"
	"github.com/galuhadi/ternakscale/internal/formula"
	"github.com/galuhadi/ternakscale/internal/service"
)

type step int

const (
	stepSpecies step = iota
	stepPick
	stepSex
	stepMeasure
	stepResult
	stepSettings
)

type pickMode int

const (
	pickBreeds pickMode = iota
	pickMethods
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Toggle   key.Binding
	Settings key.Binding
	New      key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Toggle:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new estimate")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// App drives the estimate flow: species → breed or formula → sex →
// measurements → result.
type App struct {
	cfg       config.Config
	catalog   *catalog.Catalog
	estimator *service.Estimator

	step      step
	prevStep  step
	keys      keyMap
	status    string
	statusErr bool
	width     int
	height    int

	speciesCursor int
	mode          pickMode
	pickCursor    int
	sexCursor     int

	species formula.Species
	breed   *catalog.Breed
	method  formula.Method
	sex     catalog.Sex

	girthInput  textinput.Model
	lengthInput textinput.Model
	stepInput   textinput.Model
	spanInput   textinput.Model
	focusLength bool
	focusSpan   bool

	result *service.Result
}

// New builds the app around a loaded catalog and configured estimator.
func New(cfg config.Config, cat *catalog.Catalog, est *service.Estimator) *App {
	measureInput := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 7
		in.Width = 12
		return in
	}
	a := &App{
		cfg:         cfg,
		catalog:     cat,
		estimator:   est,
		keys:        newKeyMap(),
		girthInput:  measureInput("e.g. 150"),
		lengthInput: measureInput("e.g. 120"),
		stepInput:   measureInput("2"),
		spanInput:   measureInput("1"),
	}
	if s, err := formula.ParseSpecies(cfg.UI.DefaultSpecies); err == nil {
		a.speciesCursor = int(s)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) && !a.typing() {
			return a, tea.Quit
		}
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}
	return a, nil
}

// typing reports whether a text input currently owns the keyboard, in which
// case printable keys must not trigger shortcuts.
func (a *App) typing() bool {
	return a.step == stepMeasure || a.step == stepSettings
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.step {
	case stepSpecies:
		return a.updateSpecies(msg)
	case stepPick:
		return a.updatePick(msg)
	case stepSex:
		return a.updateSex(msg)
	case stepMeasure:
		return a.updateMeasure(msg)
	case stepResult:
		return a.updateResult(msg)
	case stepSettings:
		return a.updateSettings(msg)
	}
	return a, nil
}

func (a *App) updateSpecies(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.speciesCursor > 0 {
			a.speciesCursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.speciesCursor < len(formula.AllSpecies)-1 {
			a.speciesCursor++
		}
	case key.Matches(msg, a.keys.Enter):
		a.species = formula.AllSpecies[a.speciesCursor]
		a.mode = pickBreeds
		a.pickCursor = 0
		a.status = ""
		a.step = stepPick
	case key.Matches(msg, a.keys.Settings):
		a.openSettings()
	}
	return a, nil
}

func (a *App) pickItems() int {
	if a.mode == pickBreeds {
		return len(a.catalog.Breeds(a.species))
	}
	return len(formula.Methods(a.species))
}

func (a *App) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.pickCursor > 0 {
			a.pickCursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.pickCursor < a.pickItems()-1 {
			a.pickCursor++
		}
	case key.Matches(msg, a.keys.Toggle):
		if a.mode == pickBreeds {
			a.mode = pickMethods
		} else {
			a.mode = pickBreeds
		}
		a.pickCursor = 0
	case key.Matches(msg, a.keys.Back):
		a.step = stepSpecies
	case key.Matches(msg, a.keys.Enter):
		if a.mode == pickBreeds {
			b := a.catalog.Breeds(a.species)[a.pickCursor]
			a.breed = &b
			a.method = b.Method
			a.sexCursor = 0
			a.step = stepSex
		} else {
			a.breed = nil
			a.sex = catalog.SexUnspecified
			a.method = formula.Methods(a.species)[a.pickCursor]
			a.enterMeasure()
		}
	}
	return a, nil
}

var sexOptions = []struct {
	label string
	sex   catalog.Sex
}{
	{"Male (jantan)", catalog.SexMale},
	{"Female (betina)", catalog.SexFemale},
	{"Unspecified", catalog.SexUnspecified},
}

func (a *App) updateSex(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.sexCursor > 0 {
			a.sexCursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.sexCursor < len(sexOptions)-1 {
			a.sexCursor++
		}
	case key.Matches(msg, a.keys.Back):
		a.step = stepPick
	case key.Matches(msg, a.keys.Enter):
		a.sex = sexOptions[a.sexCursor].sex
		a.enterMeasure()
	}
	return a, nil
}

func (a *App) enterMeasure() {
	a.status = ""
	a.focusLength = false
	a.girthInput.Focus()
	a.lengthInput.Blur()
	a.step = stepMeasure
}

func (a *App) updateMeasure(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		if a.breed != nil {
			a.step = stepSex
		} else {
			a.step = stepPick
		}
		return a, nil
	case key.Matches(msg, a.keys.Toggle):
		a.toggleMeasureFocus()
		return a, nil
	case key.Matches(msg, a.keys.Enter):
		if !a.focusLength {
			a.toggleMeasureFocus()
			return a, nil
		}
		a.submit()
		return a, nil
	}

	var cmd tea.Cmd
	if a.focusLength {
		a.lengthInput, cmd = a.lengthInput.Update(msg)
	} else {
		a.girthInput, cmd = a.girthInput.Update(msg)
	}
	return a, cmd
}

func (a *App) toggleMeasureFocus() {
	a.focusLength = !a.focusLength
	if a.focusLength {
		a.girthInput.Blur()
		a.lengthInput.Focus()
	} else {
		a.lengthInput.Blur()
		a.girthInput.Focus()
	}
}

// submit parses the measurement inputs and runs the estimate synchronously;
// estimation is plain arithmetic, so no async command is needed.
func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

func (a *App) submit() {
	girth, err := parseMeasurement(a.girthInput.Value())
	if err != nil {
		a.setError("chest girth: " + err.Error())
		return
	}
	length, err := parseMeasurement(a.lengthInput.Value())
	if err != nil {
		a.setError("body length: " + err.Error())
		return
	}

	req := service.Request{
		Species:    a.species,
		Sex:        a.sex,
		ChestGirth: girth,
		BodyLength: length,
	}
	if a.breed != nil {
		req.Breed = a.breed.Name
	} else {
		req.Method = a.method.Name()
	}

	res, err := a.estimator.Estimate(req)
	if err != nil {
		a.setError(err.Error())
		return
	}
	a.result = &res
	a.status = ""
	a.step = stepResult
}

func parseMeasurement(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

func (a *App) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.step = stepMeasure
	case key.Matches(msg, a.keys.New):
		a.reset()
	case key.Matches(msg, a.keys.Settings):
		a.openSettings()
	}
	return a, nil
}

func (a *App) reset() {
	a.result = nil
	a.breed = nil
	a.sex = catalog.SexUnspecified
	a.girthInput.SetValue("")
	a.lengthInput.SetValue("")
	a.status = ""
	a.step = stepSpecies
}

func (a *App) openSettings() {
	a.prevStep = a.step
	a.stepInput.SetValue(strconv.FormatFloat(a.cfg.Sensitivity.StepCM, 'f', -1, 64))
	a.spanInput.SetValue(strconv.Itoa(a.cfg.Sensitivity.Span))
	a.focusSpan = false
	a.stepInput.Focus()
	a.spanInput.Blur()
	a.status = ""
	a.step = stepSettings
}

func (a *App) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.step = a.prevStep
		return a, nil
	case key.Matches(msg, a.keys.Toggle):
		a.focusSpan = !a.focusSpan
		if a.focusSpan {
			a.stepInput.Blur()
			a.spanInput.Focus()
		} else {
			a.spanInput.Blur()
			a.stepInput.Focus()
		}
		return a, nil
	case key.Matches(msg, a.keys.Enter):
		a.saveSettings()
		return a, nil
	}

	var cmd tea.Cmd
	if a.focusSpan {
		a.spanInput, cmd = a.spanInput.Update(msg)
	} else {
		a.stepInput, cmd = a.stepInput.Update(msg)
	}
	return a, cmd
}

func (a *App) saveSettings() {
	stepCM, err := strconv.ParseFloat(strings.TrimSpace(a.stepInput.Value()), 64)
	if err != nil || stepCM <= 0 || stepCM > 10 {
		a.setError("step must be between 0 and 10 cm")
		return
	}
	span, err := strconv.Atoi(strings.TrimSpace(a.spanInput.Value()))
	if err != nil || span < 1 || span > 5 {
		a.setError("span must be between 1 and 5")
		return
	}

	a.cfg.Sensitivity.StepCM = stepCM
	a.cfg.Sensitivity.Span = span
	a.estimator.StepCM = stepCM
	a.estimator.Span = span
	if err := config.Save(a.cfg); err != nil {
		a.setError("save failed: " + err.Error())
		return
	}
	a.status = "settings saved"
	a.statusErr = false
	a.step = a.prevStep
}
