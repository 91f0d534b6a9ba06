package tui

import (
	"fmt"
	"strings"

	"github.com/galuhadi/ternakscale/internal/formula"
	"github.com/galuhadi/ternakscale/internal/service"
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ternakscale — livestock weight estimator"))
	b.WriteString("\n\n")

	switch a.step {
	case stepSpecies:
		b.WriteString(a.viewSpecies())
	case stepPick:
		b.WriteString(a.viewPick())
	case stepSex:
		b.WriteString(a.viewSex())
	case stepMeasure:
		b.WriteString(a.viewMeasure())
	case stepResult:
		b.WriteString(a.viewResult())
	case stepSettings:
		b.WriteString(a.viewSettings())
	}

	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = errorStyle
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(a.status))
	}
	b.WriteString("\n\n")
	b.WriteString(a.viewFooter())
	return b.String()
}

func cursorLine(selected bool, label string) string {
	if selected {
		return cursorStyle.Render("> ") + selectedStyle.Render(label)
	}
	return "  " + label
}

func (a *App) viewSpecies() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Species"))
	b.WriteString("\n")
	for i, s := range speciesLabels() {
		b.WriteString(cursorLine(i == a.speciesCursor, s))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func speciesLabels() []string {
	return []string{"Cattle (sapi)", "Goat (kambing)", "Sheep (domba)"}
}

func (a *App) viewPick() string {
	var b strings.Builder
	if a.mode == pickBreeds {
		fmt.Fprintf(&b, "%s\n", subtitleStyle.Render(fmt.Sprintf("%s breed  %s", a.species, dimStyle.Render("(tab: pick a formula instead)"))))
		for i, breed := range a.catalog.Breeds(a.species) {
			label := fmt.Sprintf("%-30s %s", breed.Name, dimStyle.Render(breed.MethodName))
			b.WriteString(cursorLine(i == a.pickCursor, label))
			b.WriteString("\n")
		}
	} else {
		fmt.Fprintf(&b, "%s\n", subtitleStyle.Render(fmt.Sprintf("%s formula  %s", a.species, dimStyle.Render("(tab: pick a breed instead)"))))
		for i, m := range formula.Methods(a.species) {
			label := fmt.Sprintf("%-14s %s", m.Name(), dimStyle.Render(m.Expression()))
			b.WriteString(cursorLine(i == a.pickCursor, label))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) viewSex() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", subtitleStyle.Render(fmt.Sprintf("Sex of the %s", a.breed.Name)))
	for i, opt := range sexOptions {
		b.WriteString(cursorLine(i == a.sexCursor, opt.label))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) viewMeasure() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(a.selectionSummary()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Chest girth (cm): %s\n", a.girthInput.View())
	fmt.Fprintf(&b, "Body length (cm): %s\n", a.lengthInput.View())
	if a.breed != nil {
		fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf(
			"normal range: chest %g-%g cm, length %g-%g cm",
			a.breed.Chest.Min, a.breed.Chest.Max, a.breed.Length.Min, a.breed.Length.Max)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) selectionSummary() string {
	if a.breed != nil {
		summary := fmt.Sprintf("%s · %s · %s formula", a.species, a.breed.Name, a.breed.MethodName)
		if a.sex != "" {
			summary += fmt.Sprintf(" · %s", a.sex)
		}
		return summary
	}
	return fmt.Sprintf("%s · %s formula", a.species, a.method.Name())
}

func (a *App) viewResult() string {
	res := a.result
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(a.selectionSummary()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Estimated weight: %s\n\n", weightStyle.Render(formatWeight(res.Weight)))
	fmt.Fprintf(&b, "Formula: %s = %s\n", res.Method.Name(), res.Method.Expression())
	if res.Factor != 1 || res.SexFactor != 1 {
		fmt.Fprintf(&b, "Corrections: breed ×%g, sex ×%g\n", res.Factor, res.SexFactor)
	}
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(res.Method.Reference()))
	b.WriteString("\n")
	b.WriteString(renderSensitivity(res))
	b.WriteString("\n\n")
	b.WriteString(renderChart(res))
	return b.String()
}

// renderSensitivity formats the sensitivity rows as a fixed-width table with
// the base row highlighted.
func renderSensitivity(res *service.Result) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%-10s %-10s %10s", "LD (cm)", "PB (cm)", "kg")))
	b.WriteString("\n")
	for _, row := range res.Sensitivity {
		line := fmt.Sprintf("%-10.1f %-10.1f %10.2f", row.ChestGirth, row.BodyLength, row.Weight)
		if row.Base {
			line = baseRowStyle.Render(line + "  ◂ measured")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) viewSettings() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Sensitivity table settings"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Step (cm):       %s\n", a.stepInput.View())
	fmt.Fprintf(&b, "Steps each side: %s\n", a.spanInput.View())
	rows := 2*a.cfg.Sensitivity.Span + 1
	fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("current grid: %d×%d rows", rows, rows)))
	return b.String()
}

func (a *App) viewFooter() string {
	var help string
	switch a.step {
	case stepSpecies:
		help = "↑/↓ move · enter select · s settings · q quit"
	case stepPick:
		help = "↑/↓ move · tab breeds/formulas · enter select · esc back · q quit"
	case stepSex:
		help = "↑/↓ move · enter select · esc back · q quit"
	case stepMeasure:
		help = "tab next field · enter confirm · esc back · ctrl+c quit"
	case stepResult:
		help = "n new estimate · esc adjust · s settings · q quit"
	case stepSettings:
		help = "tab next field · enter save · esc cancel · ctrl+c quit"
	}
	return footerStyle.Render(help)
}
